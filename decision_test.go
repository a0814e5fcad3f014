package docagent_test

import (
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	t.Run("returns first balanced object surrounded by noise", func(t *testing.T) {
		t.Parallel()

		got, err := docagent.ExtractJSON(`noise {"a": [1,2,{"b":3}]} trailing`)

		require.NoError(t, err)
		assert.Equal(t, `{"a": [1,2,{"b":3}]}`, got)
	})

	t.Run("returns top-level array", func(t *testing.T) {
		t.Parallel()

		got, err := docagent.ExtractJSON("here: [1, [2], {\"c\": 3}] and then {\"d\": 4}")

		require.NoError(t, err)
		assert.Equal(t, `[1, [2], {"c": 3}]`, got)
	})

	t.Run("extracts from fenced code block", func(t *testing.T) {
		t.Parallel()

		text := "```json\n{\"action\": \"complete_task\"}\n```"
		got, err := docagent.ExtractJSON(text)

		require.NoError(t, err)
		assert.Equal(t, `{"action": "complete_task"}`, got)
	})

	t.Run("fails without brackets", func(t *testing.T) {
		t.Parallel()

		_, err := docagent.ExtractJSON("no brackets here")

		require.Error(t, err)
		assert.Equal(t, docagent.ENOJSON, docagent.ErrorCode(err))
	})

	t.Run("fails on mismatched closer", func(t *testing.T) {
		t.Parallel()

		_, err := docagent.ExtractJSON(`{"a": [1}`)

		require.Error(t, err)
		assert.Equal(t, docagent.EUNBALANCED, docagent.ErrorCode(err))
	})

	t.Run("fails when text ends before structure closes", func(t *testing.T) {
		t.Parallel()

		_, err := docagent.ExtractJSON(`{"a": [1, 2]`)

		require.Error(t, err)
		assert.Equal(t, docagent.EINCOMPLETE, docagent.ErrorCode(err))
	})

	t.Run("ignores closers before the first opener", func(t *testing.T) {
		t.Parallel()

		got, err := docagent.ExtractJSON(`] } {"ok": true}`)

		require.NoError(t, err)
		assert.Equal(t, `{"ok": true}`, got)
	})
}

func TestRepairAnswer(t *testing.T) {
	t.Parallel()

	t.Run("escapes raw quotes and newlines in answer value", func(t *testing.T) {
		t.Parallel()

		raw := "{\n" +
			"    \"action\": \"complete_task\",\n" +
			"    \"arguments\": {\n" +
			"        \"answer\": \"print(\"hi\")\nx = 1\"\n" +
			"    }\n" +
			"}"

		got := docagent.RepairAnswer(raw)

		assert.Contains(t, got, `"answer": "print(\"hi\")\nx = 1"`)
	})

	t.Run("keeps existing escapes", func(t *testing.T) {
		t.Parallel()

		raw := "{\"arguments\": {\n\"answer\": \"a \\\"quoted\\\" word\"\n}\n}"

		assert.Equal(t, raw, docagent.RepairAnswer(raw))
	})

	t.Run("no-ops without answer field", func(t *testing.T) {
		t.Parallel()

		raw := `{"action": "open_pages", "arguments": {"url": "x"}}`

		assert.Equal(t, raw, docagent.RepairAnswer(raw))
	})

	t.Run("no-ops without closing brace line", func(t *testing.T) {
		t.Parallel()

		raw := `{"arguments": {"answer": "one "line" answer"}}`

		assert.Equal(t, raw, docagent.RepairAnswer(raw))
	})
}

func TestParseDecision(t *testing.T) {
	t.Parallel()

	t.Run("decodes well-formed decision", func(t *testing.T) {
		t.Parallel()

		text := `Sure! {"reasoning": "enough info", "action": "complete_task", "arguments": {"answer": "X"}}`

		d, err := docagent.ParseDecision(text)

		require.NoError(t, err)
		assert.Equal(t, "enough info", d.Reasoning)
		assert.Equal(t, docagent.ActionCompleteTask, d.Action)
		answer, err := d.Arg("answer")
		require.NoError(t, err)
		assert.Equal(t, "X", answer)
	})

	t.Run("repairs raw code in answer", func(t *testing.T) {
		t.Parallel()

		text := "```json\n{\n" +
			"    \"reasoning\": \"I have what I need\",\n" +
			"    \"action\": \"complete_task\",\n" +
			"    \"arguments\": {\n" +
			"        \"answer\": \"import autofit as af\nmodel = af.Model(\"gaussian\")\"\n" +
			"    }\n" +
			"}\n```"

		d, err := docagent.ParseDecision(text)

		require.NoError(t, err)
		answer, err := d.Arg("answer")
		require.NoError(t, err)
		assert.Equal(t, "import autofit as af\nmodel = af.Model(\"gaussian\")", answer)
	})

	t.Run("tolerates trailing comma", func(t *testing.T) {
		t.Parallel()

		text := "{\n" +
			"    \"reasoning\": \"done\",\n" +
			"    \"action\": \"complete_task\",\n" +
			"    \"arguments\": {\n" +
			"        \"answer\": \"from autofit import model\\n\\nm = model.Model()\",\n" +
			"    }\n" +
			"}"

		d, err := docagent.ParseDecision(text)

		require.NoError(t, err)
		answer, err := d.Arg("answer")
		require.NoError(t, err)
		assert.Equal(t, "from autofit import model\n\nm = model.Model()", answer)
	})

	t.Run("propagates extraction errors", func(t *testing.T) {
		t.Parallel()

		_, err := docagent.ParseDecision("I think we are done.")

		assert.Equal(t, docagent.ENOJSON, docagent.ErrorCode(err))
	})

	t.Run("fails on undecodable structure", func(t *testing.T) {
		t.Parallel()

		_, err := docagent.ParseDecision(`{"action": complete_task}`)

		require.Error(t, err)
		assert.Equal(t, docagent.EMALFORMED, docagent.ErrorCode(err))
	})

	t.Run("fails when action is missing", func(t *testing.T) {
		t.Parallel()

		_, err := docagent.ParseDecision(`{"reasoning": "hmm", "arguments": {}}`)

		require.Error(t, err)
		assert.Equal(t, docagent.EMALFORMED, docagent.ErrorCode(err))
	})
}

func TestDecision_Arg(t *testing.T) {
	t.Parallel()

	d := &docagent.Decision{
		Action:    docagent.ActionAskQuestion,
		Arguments: map[string]any{"question": "Which version?", "n": 3.0},
	}

	t.Run("returns string argument", func(t *testing.T) {
		t.Parallel()

		got, err := d.Arg("question")
		require.NoError(t, err)
		assert.Equal(t, "Which version?", got)
	})

	t.Run("fails on missing argument", func(t *testing.T) {
		t.Parallel()

		_, err := d.Arg("answer")
		assert.Equal(t, docagent.EMALFORMED, docagent.ErrorCode(err))
	})

	t.Run("fails on non-string argument", func(t *testing.T) {
		t.Parallel()

		_, err := d.Arg("n")
		assert.Equal(t, docagent.EMALFORMED, docagent.ErrorCode(err))
	})
}

func TestDecision_URLs(t *testing.T) {
	t.Parallel()

	t.Run("accepts single url", func(t *testing.T) {
		t.Parallel()

		d := &docagent.Decision{Action: docagent.ActionOpenPages, Arguments: map[string]any{"url": "http://example.test/p"}}

		urls, err := d.URLs()
		require.NoError(t, err)
		assert.Equal(t, []string{"http://example.test/p"}, urls)
	})

	t.Run("accepts list of urls", func(t *testing.T) {
		t.Parallel()

		d := &docagent.Decision{Action: docagent.ActionOpenPages, Arguments: map[string]any{"url": []any{"a.html", "b.html"}}}

		urls, err := d.URLs()
		require.NoError(t, err)
		assert.Equal(t, []string{"a.html", "b.html"}, urls)
	})

	t.Run("rejects missing url", func(t *testing.T) {
		t.Parallel()

		d := &docagent.Decision{Action: docagent.ActionOpenPages}

		_, err := d.URLs()
		assert.Equal(t, docagent.EMALFORMED, docagent.ErrorCode(err))
	})

	t.Run("rejects empty list", func(t *testing.T) {
		t.Parallel()

		d := &docagent.Decision{Action: docagent.ActionOpenPages, Arguments: map[string]any{"url": []any{}}}

		_, err := d.URLs()
		assert.Equal(t, docagent.EMALFORMED, docagent.ErrorCode(err))
	})
}
