package medinfo

// HealthInfo is the guidance shown with a detected condition. Text is
// Vietnamese, matching the application's primary audience.
type HealthInfo struct {
	Description string `json:"description"`
	Warning     string `json:"warning"`
}

// healthInfo maps English class names to their guidance.
var healthInfo = map[string]HealthInfo{
	"Cardiomegaly": {
		Description: "Tim to là tình trạng tim có kích thước lớn hơn bình thường, " +
			"thường liên quan đến tăng huyết áp, bệnh van tim hoặc bệnh cơ tim.",
		Warning: "Kết quả chỉ mang tính tham khảo. Vui lòng đến cơ sở y tế chuyên khoa " +
			"tim mạch để được thăm khám và chẩn đoán chính xác.",
	},
	"Pleural Effusion": {
		Description: "Tràn dịch màng phổi là tình trạng tích tụ dịch bất thường trong " +
			"khoang màng phổi, có thể do nhiễm trùng, suy tim hoặc bệnh lý ác tính.",
		Warning: "Kết quả chỉ mang tính tham khảo. Vui lòng đến cơ sở y tế để được " +
			"chụp chiếu bổ sung và điều trị kịp thời.",
	},
}

// GetHealthInfo returns the guidance for an English class name. Unknown
// classes return empty guidance and false.
func GetHealthInfo(classNameEN string) (HealthInfo, bool) {
	info, ok := healthInfo[classNameEN]
	return info, ok
}
