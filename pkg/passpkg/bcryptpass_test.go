package passpkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPassword(t *testing.T) {
	password := "abcdefghijklmnopqrstuvwxyz"
	hashedPassword1, err := Hash(password)
	require.NoError(t, err)
	require.NotEmpty(t, hashedPassword1)
	require.NotEqual(t, password, hashedPassword1)

	err = Check(password, hashedPassword1)
	require.NoError(t, err)

	wrongPassword := "abc"
	err = Check(wrongPassword, hashedPassword1)
	require.EqualError(t, err, bcrypt.ErrMismatchedHashAndPassword.Error())

	// Test for random salt generation
	hashedPassword2, err := Hash(password)
	require.NoError(t, err)
	require.NotEmpty(t, hashedPassword2)
	require.NotEqual(t, hashedPassword1, hashedPassword2)
}

func TestHashMaxLength(t *testing.T) {
	password := strings.Repeat("a", MaxLength)

	hashed, err := Hash(password)
	require.NoError(t, err)
	require.True(t, Verify(password, hashed))

	_, err = Hash(password + "a")
	require.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestVerify(t *testing.T) {
	hashed, err := Hash("pw1")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		password string
		hashed   string
		want     bool
	}{
		{name: "OK", password: "pw1", hashed: hashed, want: true},
		{name: "WrongPassword", password: "pw2", hashed: hashed, want: false},
		{name: "EmptyPassword", password: "", hashed: hashed, want: false},
		{name: "CaseSensitive", password: "PW1", hashed: hashed, want: false},
		{name: "MalformedHash", password: "pw1", hashed: "not-a-hash", want: false},
		{name: "EmptyHash", password: "pw1", hashed: "", want: false},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Verify(tc.password, tc.hashed); got != tc.want {
				t.Errorf("Verify(%q, %q) = %v, want %v", tc.password, tc.hashed, got, tc.want)
			}
		})
	}
}
