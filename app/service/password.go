package service

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted adaptive bcrypt hash. The algorithm, cost and
// salt are all embedded in the output string.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches hash. A malformed hash is
// treated as not verified rather than an error.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
