package constants

// Field keys of the extracted record.
const (
	FieldFirstName   = "First Name"
	FieldMiddleName  = "Middle Name"
	FieldLastName    = "Last Name"
	FieldEmail       = "Email"
	FieldMobilePhone = "Mobile Phone"
	FieldSocialLinks = "Social Links"
)

var fieldOrder = []string{
	FieldFirstName,
	FieldMiddleName,
	FieldLastName,
	FieldEmail,
	FieldMobilePhone,
	FieldSocialLinks,
}

// FieldKeys returns the record keys in output order.
func FieldKeys() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}
