package pattern_test

import (
	"testing"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"github.com/The-ChandanKV/AI-Code-Explainer/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvisor_Improve(t *testing.T) {
	t.Parallel()

	a := pattern.NewAdvisor()

	t.Run("range loop triggers time advice", func(t *testing.T) {
		t.Parallel()

		got := a.Improve("for i in range(10):\n    total += i\n", explainer.Python)

		assert.Contains(t, got.TimeComplexity, "list comprehension")
	})

	t.Run("collection literals trigger space advice", func(t *testing.T) {
		t.Parallel()

		got := a.Improve("items = []\n", explainer.Python)

		assert.Contains(t, got.SpaceComplexity, "generators")
	})

	t.Run("uncommented code asks for comments", func(t *testing.T) {
		t.Parallel()

		got := a.Improve("x = 1\ny = 2\n", explainer.Python)

		require.NotEmpty(t, got.BestPractices)
		assert.Contains(t, got.BestPractices[0], "Add comments")
	})

	t.Run("commented code does not ask for comments", func(t *testing.T) {
		t.Parallel()

		py := a.Improve("# setup\nx = 1\n", explainer.Python)
		js := a.Improve("// setup\nconst x = 1;\n", explainer.JavaScript)

		assert.Empty(t, py.BestPractices)
		assert.Empty(t, js.BestPractices)
	})

	t.Run("print suggests logging", func(t *testing.T) {
		t.Parallel()

		got := a.Improve("# noted\nprint(x)\n", explainer.Python)

		require.Len(t, got.BestPractices, 1)
		assert.Contains(t, got.BestPractices[0], "logging")
	})

	t.Run("bare try asks for exception handling", func(t *testing.T) {
		t.Parallel()

		bare := a.Improve("# guarded\ntry:\n    risky()\n", explainer.Python)
		handled := a.Improve("# guarded\ntry:\n    risky()\nexcept ValueError:\n    pass\n", explainer.Python)

		require.Len(t, bare.ErrorFixes, 1)
		assert.Contains(t, bare.ErrorFixes[0], "exception handling")
		assert.Empty(t, handled.ErrorFixes)
	})

	t.Run("raw input asks for validation", func(t *testing.T) {
		t.Parallel()

		got := a.Improve("# prompt\nname = input()\n", explainer.Python)

		require.Len(t, got.ErrorFixes, 1)
		assert.Contains(t, got.ErrorFixes[0], "input validation")
	})

	t.Run("clean commented code yields an empty report", func(t *testing.T) {
		t.Parallel()

		got := a.Improve("// doubles the input\nreturn x * 2;\n", explainer.JavaScript)

		assert.True(t, got.Empty())
	})

	t.Run("deterministic for equal input", func(t *testing.T) {
		t.Parallel()

		code := "for i in range(3):\n    print(i)\n"

		assert.Equal(t, a.Improve(code, explainer.Python), a.Improve(code, explainer.Python))
	})
}
