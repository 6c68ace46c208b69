package auth

// Identity is the resolved caller handed to request handlers. The rest of
// the system only ever needs the stable ID.
type Identity struct {
	ID    string
	Email string
	Name  string
}
