package certificate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codernaccotax/quizdrill/internal/certificate"
)

func TestGenerate(t *testing.T) {
	doc, err := certificate.Generate(certificate.Data{
		StudentName: "Riya Sen",
		QuizTitle:   "JavaScript Basics",
		Score:       8,
		Total:       10,
		IssuedAt:    time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Contains(t, doc, "Riya Sen")
	assert.Contains(t, doc, "JavaScript Basics")
	assert.Contains(t, doc, "Score: 8/10 (80.00%)")
	assert.Contains(t, doc, "Issued on: 15 Jun 2025")
	assert.Contains(t, doc, certificate.DefaultHeader)
	assert.Contains(t, doc, certificate.DefaultTitle)
	assert.Contains(t, doc, "window.print();")
}

func TestGenerate_BlankNameRejected(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		doc, err := certificate.Generate(certificate.Data{
			StudentName: name,
			QuizTitle:   "JavaScript Basics",
			Score:       5,
			Total:       10,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "VALIDATION_ERROR")
		assert.Empty(t, doc, "no document on validation failure")
	}
}

func TestGenerate_TrimsName(t *testing.T) {
	doc, err := certificate.Generate(certificate.Data{
		StudentName: "  Riya Sen  ",
		QuizTitle:   "Java Core",
		Score:       6,
		Total:       8,
	})
	require.NoError(t, err)
	assert.Contains(t, doc, ">Riya Sen<")
}

func TestGenerate_ZeroTotalRejected(t *testing.T) {
	_, err := certificate.Generate(certificate.Data{
		StudentName: "Riya Sen",
		QuizTitle:   "Java Core",
		Total:       0,
	})
	require.Error(t, err)
}

func TestGenerate_EscapesName(t *testing.T) {
	doc, err := certificate.Generate(certificate.Data{
		StudentName: "<script>alert(1)</script>",
		QuizTitle:   "Java Core",
		Score:       1,
		Total:       2,
	})
	require.NoError(t, err)
	assert.NotContains(t, doc, "<script>alert(1)</script>")
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, "80.00", certificate.Percentage(8, 10))
	assert.Equal(t, "66.67", certificate.Percentage(2, 3))
	assert.Equal(t, "0.00", certificate.Percentage(0, 10))
	assert.Equal(t, "0.00", certificate.Percentage(3, 0))
}
