package formats

import (
	"io"

	"github.com/njiago/njiago/pkg/njdf"
)

type Format interface {
	ParseFile(io.Reader) error
	Import(*njdf.DataSource) error
}
