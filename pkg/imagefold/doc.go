// Package imagefold hides embedded base64 image payloads from editable text.
//
// Markdown documents may embed images as data URIs:
//
//	![diagram](data:image/png;base64,iVBORw0KGgo...)
//
// Such payloads are often hundreds of kilobytes long. Fold replaces every data
// URI with a short placeholder so the text stays editable, and Unfold restores
// the payloads from the text the display form was derived from. A Mapper
// translates offsets between the two forms.
//
// All offsets are byte offsets into UTF-8 strings.
package imagefold
