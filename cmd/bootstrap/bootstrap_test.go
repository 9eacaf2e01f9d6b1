package bootstrap

import (
	"bytes"
	"context"
	"testing"

	"doctor-directory/config"
	"doctor-directory/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirectoryUsecase_LogsPolicies(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	directory := NewDirectoryUsecase(config.DirectoryConfig{
		SourceURL:       "http://127.0.0.1:0/doctors.json",
		SearchMatch:     "fuzzy",
		SpecialtyMatch:  "all",
		SuggestionLimit: 3,
	}, log)
	require.NotNil(t, directory)

	assert.Contains(t, buf.String(), `Unknown search match policy \"fuzzy\", using substring`)
	assert.Contains(t, buf.String(), `"search_match":"substring"`)
	assert.Contains(t, buf.String(), `"specialty_match":"all"`)

	resp, err := directory.ListDoctors(context.Background(), entity.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, "loading", resp.Status)
}
