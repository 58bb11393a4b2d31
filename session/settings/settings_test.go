package settings

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kaiwenh/Computer-Networks/response"
)

func TestDefault(t *testing.T) {
	st := Default()
	assert.Equal(t, ".", st.Root)
	assert.Equal(t, 1023, st.MaxRequestSize)
	assert.Equal(t, 4096, st.ChunkSize)

	// a port is always required
	assert.Error(t, st.Validate())
	st.Port = 8080
	assert.NoError(t, st.Validate())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Settings){
		"port zero":      func(st *Settings) { st.Port = 0 },
		"port too big":   func(st *Settings) { st.Port = 70000 },
		"empty root":     func(st *Settings) { st.Root = "" },
		"no buffer":      func(st *Settings) { st.MaxRequestSize = 0 },
		"no chunk":       func(st *Settings) { st.ChunkSize = -1 },
		"negative limit": func(st *Settings) { st.ReadTimeout = -time.Second },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			st := Default()
			st.Port = 8080
			mutate(&st)
			assert.Error(t, st.Validate())
		})
	}
}

func TestReflector(t *testing.T) {
	st := Default()
	assert.Equal(t, "<b>", st.Reflector()("<b>"))

	st.EscapeReflected = true
	assert.Equal(t, response.Escaped("<b>"), st.Reflector()("<b>"))
}

func TestString(t *testing.T) {
	st := Default()
	st.Port = 9000
	out := st.String()

	assert.Contains(t, out, "(X) Port = 9000\n")
	assert.Contains(t, out, "( ) Root = .\n")
	assert.Equal(t, 8, strings.Count(out, "\n"))
}
