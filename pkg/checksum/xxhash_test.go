package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	a := Sum([]byte("date,person,miles\n2024-01-05,Amy,3.1\n"))
	b := Sum([]byte("date,person,miles\n2024-01-05,Amy,3.1\n"))
	c := Sum([]byte("date,person,miles\n2024-01-05,Amy,3.2\n"))

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSumEmpty(t *testing.T) {
	assert.Equal(t, "ef46db3751d8e999", Sum(nil))
}
