package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusBeforeConnect(t *testing.T) {
	Close()
	assert.Nil(t, Pool())
	assert.Nil(t, Stats())
	assert.ErrorIs(t, Status(context.Background()), ErrNotConnected)
}

func TestConnectRejectsBadURL(t *testing.T) {
	err := Connect(context.Background(), Config{URL: "postgres://%zz"})
	assert.Error(t, err)
	assert.Nil(t, Pool())
}
