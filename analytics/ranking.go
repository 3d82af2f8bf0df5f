package analytics

import (
	"spamguard/reputation"

	"github.com/google/btree"
)

// spammerItem orders entries by score ascending, then spam reports descending, then domain.
type spammerItem reputation.Entry

func (a spammerItem) Less(other btree.Item) bool {
	b := other.(spammerItem)
	if a.ReputationScore != b.ReputationScore {
		return a.ReputationScore < b.ReputationScore
	}
	if a.SpamReports != b.SpamReports {
		return a.SpamReports > b.SpamReports
	}
	return a.Domain < b.Domain
}

// trustedItem orders entries by score descending, then legitimate reports descending, then domain.
type trustedItem reputation.Entry

func (a trustedItem) Less(other btree.Item) bool {
	b := other.(trustedItem)
	if a.ReputationScore != b.ReputationScore {
		return a.ReputationScore > b.ReputationScore
	}
	if a.LegitimateReports != b.LegitimateReports {
		return a.LegitimateReports > b.LegitimateReports
	}
	return a.Domain < b.Domain
}

// TopSpammers returns up to limit domains with the worst reputation.
func (a *Analytics) TopSpammers(limit int) []reputation.Entry {
	tree := btree.New(2)
	for e := range a.index.All() {
		tree.ReplaceOrInsert(spammerItem(e))
	}
	return ascend(tree, limit, func(i btree.Item) reputation.Entry {
		return reputation.Entry(i.(spammerItem))
	})
}

// TopTrusted returns up to limit domains with the best reputation.
func (a *Analytics) TopTrusted(limit int) []reputation.Entry {
	tree := btree.New(2)
	for e := range a.index.All() {
		tree.ReplaceOrInsert(trustedItem(e))
	}
	return ascend(tree, limit, func(i btree.Item) reputation.Entry {
		return reputation.Entry(i.(trustedItem))
	})
}

func ascend(tree *btree.BTree, limit int, entry func(btree.Item) reputation.Entry) []reputation.Entry {
	res := []reputation.Entry{}
	if limit <= 0 {
		return res
	}
	tree.Ascend(func(i btree.Item) bool {
		res = append(res, entry(i))
		return len(res) < limit
	})
	return res
}
