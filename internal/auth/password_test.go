package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDigest_KnownVector(t *testing.T) {
	assert.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		Digest("password"))
	assert.Len(t, Digest(""), 64)
}

func TestSHA256Hasher_Deterministic(t *testing.T) {
	h := SHA256Hasher{}
	first, err := h.Hash("correct horse")
	require.NoError(t, err)
	second, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, "correct horse", first)
}

func TestVerify_SHA256(t *testing.T) {
	stored := Digest("hunter2")

	assert.True(t, Verify("hunter2", stored))
	assert.False(t, Verify("hunter3", stored))
	assert.False(t, Verify("hunter2", stored[:63]))
}

func TestVerify_Bcrypt(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	stored, err := h.Hash("hunter2")
	require.NoError(t, err)

	assert.True(t, Verify("hunter2", stored))
	assert.False(t, Verify("hunter3", stored))
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher("")
	require.NoError(t, err)
	assert.IsType(t, SHA256Hasher{}, h)

	h, err = NewHasher("BCRYPT")
	require.NoError(t, err)
	assert.IsType(t, BcryptHasher{}, h)

	_, err = NewHasher("md5")
	require.ErrorIs(t, err, ErrUnknownHasher)
}
