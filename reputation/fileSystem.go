package reputation

// fileSystem is the read side of spam.FileSystem, kept local so tests can hand in an in-memory mock.
type fileSystem interface {
	ReadFile(string) ([]byte, error)
}
