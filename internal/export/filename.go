package export

import (
	"fmt"
	"strings"
)

var nameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// FileName builds <device>_<start>_<end>.<ext>; graphs get a _graph infix.
func FileName(deviceName string, format Format, startTs, endTs int64) string {
	name := nameReplacer.Replace(strings.TrimSpace(deviceName))
	if name == "" {
		name = "export"
	}
	switch format {
	case FormatPDFGraph:
		return fmt.Sprintf("%s_graph_%d_%d.pdf", name, startTs, endTs)
	default:
		return fmt.Sprintf("%s_%d_%d.%s", name, startTs, endTs, format)
	}
}
