package kv

// Store defines the interface for a key-value store.
// The in-memory implementation is loaded from and saved to disk by the
// persistence layer; decorators such as the instrumented store wrap it.
type Store interface {
	// Get retrieves the value associated with the given key.
	// Returns the value and true if the key exists, or empty string and false if not.
	Get(key string) (string, bool)

	// Set stores a key-value pair, overwriting any previous value.
	// Returns an error if the operation fails.
	Set(key, value string) error

	// Delete removes a key from the store.
	// Deleting a key that does not exist is not an error.
	Delete(key string) error

	// Entries returns a copy of every key-value pair in the store.
	Entries() map[string]string

	// Len returns the number of keys in the store.
	Len() int
}
