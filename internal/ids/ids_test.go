package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "ENT001", Format(EntityPrefix, 1))
	assert.Equal(t, "REC042", Format(CollectionPrefix, 42))
	assert.Equal(t, "DET999", Format(DetailPrefix, 999))
	assert.Equal(t, "DET1000", Format(DetailPrefix, 1000), "wider than three digits must not truncate")
}

func TestSeq(t *testing.T) {
	n, err := Seq(EntityPrefix, "ENT007")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = Seq(DetailPrefix, "DET1000")
	require.NoError(t, err)
	assert.Equal(t, 1000, n)

	_, err = Seq(EntityPrefix, "REC001")
	require.Error(t, err)

	_, err = Seq(EntityPrefix, "ENTabc")
	require.Error(t, err)
}
