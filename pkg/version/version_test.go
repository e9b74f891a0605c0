package version_test

import (
	"encoding/json"
	"testing"

	// Packages
	version "github.com/mutablelogic/go-weather/pkg/version"
	"github.com/stretchr/testify/assert"
)

func Test_Version_001(t *testing.T) {
	assert := assert.New(t)

	version.GitTag, version.GitBranch = "v1.2.3", "main"
	defer func() { version.GitTag, version.GitBranch = "", "" }()

	assert.Equal("v1.2.3", version.Version())
	assert.Equal("weather/v1.2.3", version.UserAgent("weather"))

	version.GitTag = ""
	assert.Equal("main", version.Version())
}

func Test_Version_002(t *testing.T) {
	assert := assert.New(t)

	version.GitTag = "v1.2.3"
	defer func() { version.GitTag = "" }()

	var metadata map[string]string
	assert.NoError(json.Unmarshal(version.JSON("weather"), &metadata))
	assert.Equal("weather", metadata["name"])
	assert.Equal("v1.2.3", metadata["version"])
	assert.Equal("v1.2.3", metadata["tag"])
	assert.NotEmpty(metadata["compiler"])
	assert.NotContains(metadata, "branch")
}
