package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"giveaway-picker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)
	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestCommentsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := Comments(&buf, CSV, []model.Comment{
		{ID: "1", Username: "ana", Text: `says "hi", twice`, Timestamp: "2024-01-01T00:00:00Z", Likes: 3, Verified: true},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"id,username,text,timestamp,likes,verified\n"+
			`1,ana,"says ""hi"", twice",2024-01-01T00:00:00Z,3,true`+"\n",
		buf.String())
}

func TestWinnersCSV(t *testing.T) {
	var buf bytes.Buffer
	err := Winners(&buf, CSV, []model.Winner{{Comment: model.Comment{ID: "9", Username: "bo"}, Position: 1}})
	require.NoError(t, err)
	assert.Equal(t, "id,username,text,timestamp,likes,verified,position\n9,bo,,,0,false,1\n", buf.String())
}

func TestCommentsJSON(t *testing.T) {
	var buf bytes.Buffer
	in := []model.Comment{{ID: "1", Username: "ana", Replies: []model.Comment{{ID: "r"}}}}
	require.NoError(t, Comments(&buf, JSON, in))
	var out []model.Comment
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, in, out)
	assert.Contains(t, buf.String(), "\n  {")
}
