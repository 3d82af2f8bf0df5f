package logging

import (
	"time"

	"spamguard/spam"
)

const (
	operationVerdict    = "SpamFilterVerdict"
	operationReputation = "DomainReputationChange"
	categoryVerdict     = "SpamFilterLog"
	categoryReputation  = "DomainReputationLog"
)

type verdictLogEntry struct {
	InstanceID    string                  `json:"instanceId"`
	OperationName string                  `json:"operationName"`
	Category      string                  `json:"category"`
	Properties    verdictLogEntryProperty `json:"properties"`
}

type reputationLogEntry struct {
	InstanceID    string                     `json:"instanceId"`
	OperationName string                     `json:"operationName"`
	Category      string                     `json:"category"`
	Properties    reputationLogEntryProperty `json:"properties"`
}

type verdictLogEntryProperty struct {
	Sender        string                 `json:"sender"`
	Domain        string                 `json:"domain"`
	Action        string                 `json:"action"`
	CombinedScore float64                `json:"combinedScore"`
	Confidence    string                 `json:"confidence"`
	Keywords      keywordLogDetailsEntry `json:"keywords"`
	DomainDetails domainLogDetailsEntry  `json:"domainDetails"`
	ScanTimeMs    float64                `json:"scanTimeMs"`
}

type keywordLogDetailsEntry struct {
	SpamScore int      `json:"spamScore"`
	Matched   []string `json:"matched"`
}

type domainLogDetailsEntry struct {
	ReputationScore int    `json:"reputationScore"`
	Status          string `json:"status"`
}

type reputationLogEntryProperty struct {
	Domain   string `json:"domain"`
	Action   string `json:"action"`
	Amount   int    `json:"amount"`
	OldScore int    `json:"oldScore"`
	NewScore int    `json:"newScore"`
}

func newVerdictLogEntry(instanceID string, v spam.Verdict) *verdictLogEntry {
	matched := v.Keywords.MatchedKeywords
	if matched == nil {
		matched = []string{}
	}

	return &verdictLogEntry{
		InstanceID:    instanceID,
		OperationName: operationVerdict,
		Category:      categoryVerdict,
		Properties: verdictLogEntryProperty{
			Sender:        v.Sender,
			Domain:        v.Domain,
			Action:        v.Decision.String(),
			CombinedScore: v.CombinedScore,
			Confidence:    v.Confidence.String(),
			Keywords: keywordLogDetailsEntry{
				SpamScore: v.Keywords.SpamScore,
				Matched:   matched,
			},
			DomainDetails: domainLogDetailsEntry{
				ReputationScore: v.DomainInfo.ReputationScore,
				Status:          v.DomainInfo.Status.String(),
			},
			ScanTimeMs: float64(v.ScanTime) / float64(time.Millisecond),
		},
	}
}

func newReputationLogEntry(instanceID string, action string, domain string, amount int, oldScore int, newScore int) *reputationLogEntry {
	return &reputationLogEntry{
		InstanceID:    instanceID,
		OperationName: operationReputation,
		Category:      categoryReputation,
		Properties: reputationLogEntryProperty{
			Domain:   domain,
			Action:   action,
			Amount:   amount,
			OldScore: oldScore,
			NewScore: newScore,
		},
	}
}
