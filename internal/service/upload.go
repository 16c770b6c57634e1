package service

import "fmt"

// allowedPhotoTypes mirrors the image formats phones actually produce.
var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

// validatePhoto checks content type and size before any bytes are stored.
func validatePhoto(contentType string, size, maxBytes int64) error {
	if size <= 0 {
		return fmt.Errorf("%w: no photo uploaded", ErrInvalidUpload)
	}
	if size > maxBytes {
		return fmt.Errorf("%w: photo exceeds %d bytes", ErrInvalidUpload, maxBytes)
	}
	if _, ok := allowedPhotoTypes[contentType]; !ok {
		return fmt.Errorf("%w: only image files are allowed", ErrInvalidUpload)
	}
	return nil
}

func photoExt(contentType string) string {
	if ext, ok := allowedPhotoTypes[contentType]; ok {
		return ext
	}
	return ".jpg"
}
