package decompiler

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/morozRed/lwdecomp/internal/fileutil"
)

type projectXML struct {
	ItemGroups []struct {
		References []struct {
			Include string `xml:"Include,attr"`
		} `xml:"Reference"`
	} `xml:"ItemGroup"`
}

// ReadProjectReferences returns the assembly references of a generated
// project file in document order. Strong-name suffixes are dropped.
func ReadProjectReferences(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return ParseProjectReferences(data)
}

func ParseProjectReferences(data []byte) ([]string, error) {
	var project projectXML
	if err := xml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	refs := make([]string, 0)
	for _, group := range project.ItemGroups {
		for _, ref := range group.References {
			name := ref.Include
			if i := strings.Index(name, ","); i >= 0 {
				name = name[:i]
			}
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			refs = append(refs, name)
		}
	}
	return fileutil.DedupeStrings(refs), nil
}
