package directory

// PasswordAttribute is the Active Directory attribute replaced on reset.
const PasswordAttribute = "unicodePwd"

// EncodePassword converts a plaintext password into the value Active
// Directory requires for a unicodePwd replace: the password surrounded by
// literal double quotes, encoded as UTF-16LE. The generated passwords are
// ASCII only, so each character is its byte followed by a NUL.
func EncodePassword(plain string) []byte {
	quoted := `"` + plain + `"`
	encoded := make([]byte, 0, len(quoted)*2)
	for i := 0; i < len(quoted); i++ {
		encoded = append(encoded, quoted[i], 0x00)
	}
	return encoded
}
