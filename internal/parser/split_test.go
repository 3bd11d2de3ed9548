package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_PartLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		err      error
	}{
		{
			name:  "simple part",
			input: "1 16 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat",
			expected: []string{"1", "16", "0", "0", "0", "1", "0", "0", "0", "1", "0", "0", "0", "1",
				"3001.dat"},
		},
		{
			name:  "file name with embedded spaces",
			input: "1 4 10 -24 0 1 0 0 0 1 0 0 0 1 my sub model.ldr",
			expected: []string{"1", "4", "10", "-24", "0", "1", "0", "0", "0", "1", "0", "0", "0", "1",
				"my sub model.ldr"},
		},
		{
			name:  "collapses repeated blanks",
			input: "  1  16   0 0 0   1 0 0 0 1 0 0 0 1    3001.dat",
			expected: []string{"1", "16", "0", "0", "0", "1", "0", "0", "0", "1", "0", "0", "0", "1",
				"3001.dat"},
		},
		{
			name:  "too few transform fields",
			input: "1 16 0 0 0 1 0 0 0 1 0 0",
			err:   ErrTruncated,
		},
		{
			name:  "missing file name",
			input: "1 16 0 0 0 1 0 0 0 1 0 0 0 1",
			err:   ErrTruncated,
		},
		{
			name:  "type digit only",
			input: "1",
			err:   ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := Split(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, argv)
			assert.True(t, IsPartLine(argv))
		})
	}
}

func TestSplit_WriteMarkerDropped(t *testing.T) {
	argv, err := Split("1 WRITE 16 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat")
	require.NoError(t, err)
	assert.Equal(t, "1", argv[0])
	assert.Equal(t, "16", argv[1])
	assert.Len(t, argv, 14)
}

func TestSplit_GeometryLines(t *testing.T) {
	argv, err := Split("2 24  0 0 0   1 1 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "24", "0", "0", "0", "1", "1", "1"}, argv)

	argv, err = Split("5 24 0 0 0 1 1 1 2 2 2 3 3 3")
	require.NoError(t, err)
	assert.Len(t, argv, 14)
}

func TestSplit_CommentLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		err      error
	}{
		{
			name:     "plain meta",
			input:    "0 !LPUB ASSEM MODEL_SCALE 200.0",
			expected: []string{"0", "!LPUB", "ASSEM", "MODEL_SCALE", "200.0"},
		},
		{
			name:     "quoted value",
			input:    `0 !LPUB PAGE BACKGROUND COLOR "0xFFCCCC"`,
			expected: []string{"0", "!LPUB", "PAGE", "BACKGROUND", "COLOR", "0xFFCCCC"},
		},
		{
			name:     "quoted value with spaces",
			input:    `0 !LPUB INSERT TEXT "Hello World" "Arial,24" "Black"`,
			expected: []string{"0", "!LPUB", "INSERT", "TEXT", "Hello World", "Arial,24", "Black"},
		},
		{
			name:     "escaped quote is content",
			input:    `0 !LPUB PAGE DOCUMENT_TITLE "The \"Big\" Truck"`,
			expected: []string{"0", "!LPUB", "PAGE", "DOCUMENT_TITLE", `The \"Big\" Truck`},
		},
		{
			name:     "empty quoted string",
			input:    `0 !LPUB PAGE MODEL_ID ""`,
			expected: []string{"0", "!LPUB", "PAGE", "MODEL_ID", ""},
		},
		{
			name:     "ghost prefix stripped",
			input:    "0 GHOST 1 16 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat",
			expected: []string{"1", "16", "0", "0", "0", "1", "0", "0", "0", "1", "0", "0", "0", "1", "3001.dat"},
		},
		{
			name:  "unterminated quote",
			input: `0 !LPUB PAGE DOCUMENT_TITLE "Truck`,
			err:   ErrUnterminatedQuote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := Split(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, argv)
		})
	}
}

func TestSplit_BlankAndUnknownLines(t *testing.T) {
	for _, line := range []string{"", "   ", "\t", "x foo"} {
		argv, err := Split(line)
		assert.NoError(t, err)
		assert.Empty(t, argv, "line %q", line)
	}
}
