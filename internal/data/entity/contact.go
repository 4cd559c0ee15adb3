package entity

type ContactKind string

const (
	ContactKindInquiry    ContactKind = "inquiry"
	ContactKindNewsletter ContactKind = "newsletter"
)

// Contact is one row of the contact/newsletter funnel.
type Contact struct {
	BaseSimple
	Kind    ContactKind `db:"kind"`
	Name    string      `db:"name"`
	Email   string      `db:"email"`
	Message string      `db:"message"`
}
