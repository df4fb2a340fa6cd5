package auth

import (
	"testing"

	"bookbridge/config"

	"github.com/stretchr/testify/assert"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	password := "correct horse battery staple"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Correct password matches
	assert.True(t, hasher.Check(password, hash))

	// Incorrect password does not
	assert.False(t, hasher.Check("wrong password", hash))

	// Empty password does not
	assert.False(t, hasher.Check("", hash))

	// Garbage hash never matches
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ConfiguredCost(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("some password")
	assert.NoError(t, err)
	assert.True(t, hasher.Check("some password", hash))
}
