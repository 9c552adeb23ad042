package security

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures for accepted document types
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	".docx": {{0x50, 0x4B, 0x03, 0x04}}, // ZIP (PK..)
	".txt":  {},                         // no signature, MIME sniffing decides
}

// Allowed document MIME types per extension
var allowedMIMEByExt = map[string]map[string]bool{
	".pdf": {"application/pdf": true},
	".docx": {
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"application/zip": true,
	},
	".txt": {"text/plain": true},
}

// ValidateFile performs 3-layer document validation:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME type must be one the extension may carry
func ValidateFile(filename string, data []byte, detectedMIME string) FileValidationResult {
	result := FileValidationResult{
		DetectedMIME: detectedMIME,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	allowedMIME, ok := allowedMIMEByExt[ext]
	if !ok {
		result.Error = "file extension not allowed: " + ext + " (allowed: " + strings.Join(AllowedExtensions(), ", ") + ")"
		return result
	}

	// Layer 2: Magic bytes
	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	// Layer 3: MIME
	if !allowedMIME[detectedMIME] {
		result.Error = "MIME type not allowed for " + ext + ": " + detectedMIME
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}
	if len(signatures) == 0 {
		return len(data) > 0
	}
	if len(data) < 4 {
		return false
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// AllowedExtensions returns the accepted extensions, sorted
func AllowedExtensions() []string {
	extensions := make([]string, 0, len(allowedMIMEByExt))
	for ext := range allowedMIMEByExt {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}
