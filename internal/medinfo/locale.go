package medinfo

import (
	"golang.org/x/text/language"
)

// supported lists the languages the API can answer in. English first makes
// it the fallback for unmatched Accept-Language values.
var supported = []language.Tag{
	language.English,
	language.Vietnamese,
}

var matcher = language.NewMatcher(supported)

// MatchLanguage resolves an Accept-Language header value to the closest
// supported language. Empty or unparseable input falls back to English.
func MatchLanguage(acceptLanguage string) language.Tag {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	// MatchStrings can return an extended variant of a supported tag;
	// collapse back to the base we actually have messages for.
	base, _ := tag.Base()
	if base.String() == "vi" {
		return language.Vietnamese
	}
	return language.English
}

// messages holds the user-facing error catalog per language. Codes align
// with the imaging validation codes plus the API's own failure modes.
var messages = map[language.Tag]map[string]string{
	language.English: {
		"FILE_TOO_LARGE":      "File size exceeds the maximum limit. Please upload a file smaller than 10MB.",
		"INVALID_FORMAT":      "Invalid file format. Allowed formats: PNG, JPG, JPEG.",
		"CORRUPTED_IMAGE":     "Image file is corrupted or cannot be opened. Please try another file.",
		"IMAGE_TOO_SMALL":     "Image dimensions too small. Please upload a higher-resolution image.",
		"IMAGE_TOO_LARGE":     "Image dimensions too large. Please upload an image smaller than 2048x2048 pixels.",
		"INVALID_IMAGE_ID":    "Invalid or expired image ID. Please upload a new image.",
		"FILTER_NOT_FOUND":    "Filter not found. Please choose a valid filter.",
		"PROCESSING_FAILED":   "Image processing failed. Please retry or use another image.",
		"NO_FILTERS_SELECTED": "Please select at least one filter to apply.",
		"DETECTION_FAILED":    "Disease detection failed. Please retry later.",
		"MODEL_NOT_LOADED":    "Detection model not loaded. Please ensure model weights are available.",
	},
	language.Vietnamese: {
		"FILE_TOO_LARGE":      "Kích thước tệp vượt quá giới hạn tối đa. Vui lòng tải lên tệp nhỏ hơn 10MB.",
		"INVALID_FORMAT":      "Định dạng tệp không hợp lệ. Chỉ chấp nhận các định dạng: PNG, JPG, JPEG.",
		"CORRUPTED_IMAGE":     "Tệp hình ảnh bị hỏng hoặc không thể mở. Vui lòng thử tệp khác.",
		"IMAGE_TOO_SMALL":     "Kích thước hình ảnh quá nhỏ. Vui lòng tải lên hình ảnh có độ phân giải cao hơn.",
		"IMAGE_TOO_LARGE":     "Kích thước hình ảnh quá lớn. Vui lòng tải lên hình ảnh nhỏ hơn 2048x2048 pixel.",
		"INVALID_IMAGE_ID":    "ID hình ảnh không hợp lệ hoặc đã hết hạn. Vui lòng tải lên hình ảnh mới.",
		"FILTER_NOT_FOUND":    "Bộ lọc không tồn tại. Vui lòng chọn bộ lọc hợp lệ.",
		"PROCESSING_FAILED":   "Xử lý hình ảnh thất bại. Vui lòng thử lại hoặc sử dụng hình ảnh khác.",
		"NO_FILTERS_SELECTED": "Vui lòng chọn ít nhất một bộ lọc để áp dụng.",
		"DETECTION_FAILED":    "Phát hiện bệnh thất bại. Vui lòng thử lại sau.",
		"MODEL_NOT_LOADED":    "Mô hình phát hiện chưa được tải. Vui lòng kiểm tra tệp trọng số.",
	},
}

// Message returns the user-facing text for an error code in the given
// language, falling back to English and finally to the code itself.
func Message(code string, tag language.Tag) string {
	if m, ok := messages[tag]; ok {
		if msg, ok := m[code]; ok {
			return msg
		}
	}
	if msg, ok := messages[language.English][code]; ok {
		return msg
	}
	return code
}
