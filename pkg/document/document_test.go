package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapflowhq/zapflow/pkg/document"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"steps": {
			"inicio": {"message": "Olá!", "next": "fim"},
			"fim": {"message": "Até logo!"},
			"_meta": {"positions": "legacy garbage"},
			"quebrado": "not an object"
		},
		"offHoursMessage": "Estamos fechados."
	}`)

	doc, err := document.Parse(data)
	require.NoError(t, err)

	assert.Len(t, doc.Steps, 2, "reserved and malformed steps are skipped")
	assert.Contains(t, doc.Steps, "inicio")
	assert.Contains(t, doc.Steps, "fim")
	assert.NotContains(t, doc.Steps, "_meta")
	assert.NotContains(t, doc.Steps, "quebrado")
	assert.Equal(t, "Estamos fechados.", doc.OffHoursMessage)
}

func TestParse_TopLevelFailure(t *testing.T) {
	_, err := document.Parse([]byte(`{not json`))
	assert.Error(t, err)
}

func TestDocument_Clone(t *testing.T) {
	doc := &document.Document{
		Steps: map[string]document.Step{
			"inicio": {
				Message: "Olá!",
				Responses: map[string]any{
					"1": map[string]any{"next": "fim", "valor": "Sair"},
				},
			},
		},
	}

	clone, err := doc.Clone()
	require.NoError(t, err)

	clone.Steps["inicio"] = document.Step{Message: "mutated"}
	assert.Equal(t, "Olá!", doc.Steps["inicio"].Message)
}

func TestDocument_EncodeOmitsEmptyMessage(t *testing.T) {
	doc := &document.Document{
		Steps: map[string]document.Step{
			"mudo": {Next: "fim"},
		},
	}

	data, err := doc.Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"message"`)
}
