package formatter

import (
	"bytes"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-horti/internal/core/model"
	"github.com/penwyp/go-horti/internal/presentation/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plot(owner string, lines ...string) layout.Plot {
	return layout.Plot{Record: &model.PlantRecord{Identity: owner, Owner: owner}, Lines: lines}
}

func TestGridRenderRows(t *testing.T) {
	f := NewGridFormatter(2)

	out := f.Render([]layout.Plot{
		plot("a", "a1", "a2"),
		plot("b", "b1", "b2"),
		plot("c", "c1", "c2"),
	})

	assert.Equal(t, " a1 b1\n a2 b2\n\n c1\n c2\n\n", out)
}

func TestGridRenderEmpty(t *testing.T) {
	assert.Equal(t, "", NewGridFormatter(3).Render(nil))
}

func TestGridZeroColumnsMeansOne(t *testing.T) {
	out := NewGridFormatter(0).Render([]layout.Plot{plot("a", "x"), plot("b", "y")})
	assert.Equal(t, " x\n\n y\n\n", out)
}

func TestGridFormatWrites(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGridFormatter(3).Format(&buf, []layout.Plot{plot("a", "x")}))
	assert.Equal(t, " x\n\n", buf.String())
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	plots := []layout.Plot{
		{Record: &model.PlantRecord{Identity: "alice", Owner: "alice", EffectiveLastWatered: 20, IsDead: false}, Lines: []string{"x"}},
		{Record: &model.PlantRecord{Identity: "bob", Owner: "bob", EffectiveLastWatered: 10, IsDead: true}, Lines: []string{"y"}},
	}

	require.NoError(t, NewJSONFormatter().Format(&buf, plots))

	var decoded []map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "alice", decoded[0]["identity"])
	assert.Equal(t, float64(20), decoded[0]["effective_last_watered"])
	assert.Equal(t, true, decoded[1]["is_dead"])
	assert.Equal(t, []any{"y"}, decoded[1]["plot"])
}

func TestNewFormatter(t *testing.T) {
	f, err := New("text", 2)
	require.NoError(t, err)
	assert.IsType(t, &GridFormatter{}, f)

	f, err = New("json", 2)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	_, err = New("csv", 2)
	assert.Error(t, err)
}
