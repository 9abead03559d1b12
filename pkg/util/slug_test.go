package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Senior Go Developer":      "senior-go-developer",
		"  React / Vue  Engineer ": "react-vue-engineer",
		"C++ (remote)":             "c-remote",
		"Desarrollador Web":        "desarrollador-web",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
