package medinfo

// Class is one detectable abnormality class. IDs match the detection model's
// output indices.
type Class struct {
	ID     int    `json:"id"`
	NameEN string `json:"name_en"`
	NameVI string `json:"name_vi"`
}

// classes is the fixed abnormality class table, in model output order.
var classes = []Class{
	{ID: 0, NameEN: "Cardiomegaly", NameVI: "Tim to"},
	{ID: 1, NameEN: "Pleural Effusion", NameVI: "Tràn dịch màng phổi"},
}

// Classes returns all abnormality classes in model output order.
func Classes() []Class {
	out := make([]Class, len(classes))
	copy(out, classes)
	return out
}

// ClassCount returns the number of abnormality classes.
func ClassCount() int { return len(classes) }

// ClassByID returns the class with the given model output index.
func ClassByID(id int) (Class, bool) {
	if id < 0 || id >= len(classes) {
		return Class{}, false
	}
	return classes[id], true
}

// VietnameseName translates an English class name, falling back to the input
// when no translation exists.
func VietnameseName(english string) string {
	for _, c := range classes {
		if c.NameEN == english {
			return c.NameVI
		}
	}
	return english
}

// EnglishName translates a Vietnamese class name, falling back to the input
// when no translation exists.
func EnglishName(vietnamese string) string {
	for _, c := range classes {
		if c.NameVI == vietnamese {
			return c.NameEN
		}
	}
	return vietnamese
}

// ValidClassName reports whether name is a known class name in either
// language.
func ValidClassName(name string) bool {
	for _, c := range classes {
		if c.NameEN == name || c.NameVI == name {
			return true
		}
	}
	return false
}
