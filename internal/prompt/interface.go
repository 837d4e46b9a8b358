package prompt

// Confirmer asks the operator a yes/no question and blocks until answered.
//
// The cleanup pipeline only ever needs boolean decisions, so the whole
// interactive surface reduces to this single method; tests inject canned
// answers via MockConfirmer instead of a real terminal.
type Confirmer interface {
	Confirm(question string) (bool, error)
}
