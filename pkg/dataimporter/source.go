package dataimporter

import (
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/rs/zerolog/log"
)

func isValidURL(toTest string) bool {
	parsed, err := url.Parse(toTest)
	if err != nil {
		return false
	}

	return parsed.Scheme != "" && parsed.Host != ""
}

func tempDownloadFile(source string) (*os.File, error) {
	resp, err := http.Get(source)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(os.TempDir(), "njiago-data-importer-")
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot create temporary file")
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return nil, err
	}

	return tmpFile, nil
}
