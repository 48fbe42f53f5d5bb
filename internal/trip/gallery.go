package trip

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GalleryPrefix is the URL path local gallery files are served under.
const GalleryPrefix = "/gallery/"

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

type Image struct {
	Src     string
	Caption string
}

// Gallery lists image files in dir (sorted by name) followed by the extra URLs.
// A missing directory yields only the URLs.
func Gallery(dir string, urls []string) ([]Image, error) {
	var images []Image
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() || !imageExts[strings.ToLower(path.Ext(e.Name()))] {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			images = append(images, Image{Src: GalleryPrefix + name, Caption: Caption(name)})
		}
	}
	for _, u := range urls {
		images = append(images, Image{Src: u, Caption: Caption(u)})
	}
	return images, nil
}

// Caption turns "villa_pool-view.jpg" into "Villa Pool View".
func Caption(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return cases.Title(language.English).String(base)
}
