package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wms/internal/core/domain/model/kernel"
)

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Médical":             "ME",
		"Matériel médical":    "MM",
		"hygiène - bébé":      "HB",
		"X":                   "XX",
		"":                    "XX",
		"  --  ":              "XX",
		"Électronique Légère": "EL",
	}
	for in, want := range cases {
		assert.Equal(t, want, kernel.Initials(in), in)
	}
}

func TestFragment(t *testing.T) {
	assert.Equal(t, "CRO", kernel.Fragment("Croix-Rouge", 3))
	assert.Equal(t, "AEX", kernel.Fragment("Aé", 3))
	assert.Equal(t, "XXX", kernel.Fragment("", 3))
}

func TestFoldASCII(t *testing.T) {
	assert.Equal(t, "Hygiene", kernel.FoldASCII("Hygiène"))
}
