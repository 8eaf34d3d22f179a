package folders

const (
	confirmQuestion = "Do you want to continue? [Y/n] "
	declineAnswer   = "n"
)

// Confirmer asks the user a yes/no question before a destructive step.
type Confirmer interface {
	Confirm(question string) (bool, error)
}
