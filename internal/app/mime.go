package app

import (
	"log"
	"mime"
)

func init() {
	// Some minimal base images miss webp in /etc/mime.types; the uploads
	// file server relies on extension lookup.
	ensureMimeType(".webp", "image/webp")
}

func ensureMimeType(ext, typ string) {
	if mime.TypeByExtension(ext) != "" {
		return
	}
	if err := mime.AddExtensionType(ext, typ); err != nil {
		log.Printf("app: failed to register MIME type for %s: %v", ext, err)
	}
}
