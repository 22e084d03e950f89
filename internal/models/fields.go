package models

// Field describes one descriptive field of a patient record.
type Field struct {
	Key       string // yaml/json key and CLI flag name
	Column    string
	Label     string
	Narrative bool // long clinical text
	get       func(*PatientFields) *string
}

// Value returns the field value of f.
func (d Field) Value(f *PatientFields) string {
	return *d.get(f)
}

// Set assigns v to the field of f.
func (d Field) Set(f *PatientFields, v string) {
	*d.get(f) = v
}

// Fields lists the descriptive fields in display order: the short identity
// fields first, then the narrative sections in report order. Photo is last.
var Fields = []Field{
	{Key: "full_name", Column: "firstname_familyname", Label: "الاسم واللقب", get: func(f *PatientFields) *string { return &f.FullName }},
	{Key: "age", Column: "age", Label: "السن", get: func(f *PatientFields) *string { return &f.Age }},
	{Key: "sex", Column: "sex", Label: "الجنس", get: func(f *PatientFields) *string { return &f.Sex }},
	{Key: "education_level", Column: "education_level", Label: "المستوى الدراسي", get: func(f *PatientFields) *string { return &f.EducationLevel }},
	{Key: "address", Column: "address", Label: "العنوان", get: func(f *PatientFields) *string { return &f.Address }},
	{Key: "information", Column: "information", Label: "معلومات", Narrative: true, get: func(f *PatientFields) *string { return &f.Information }},
	{Key: "character", Column: "character", Label: "الطبع", Narrative: true, get: func(f *PatientFields) *string { return &f.Character }},
	{Key: "reason_visit", Column: "reason_visit", Label: "سبب الزيارة", Narrative: true, get: func(f *PatientFields) *string { return &f.ReasonVisit }},
	{Key: "from_whom", Column: "from_whom", Label: "من طرف", Narrative: true, get: func(f *PatientFields) *string { return &f.FromWhom }},
	{Key: "history_illness", Column: "history_illness", Label: "التاريخ المرضي", Narrative: true, get: func(f *PatientFields) *string { return &f.HistoryIllness }},
	{Key: "psychiatric_history", Column: "psychiatric_history", Label: "التاريخ النفسي", Narrative: true, get: func(f *PatientFields) *string { return &f.PsychiatricHistory }},
	{Key: "clinic_follow", Column: "clinic_follow", Label: "المتابعة السريرية", Narrative: true, get: func(f *PatientFields) *string { return &f.ClinicFollow }},
	{Key: "diagnosis_history", Column: "diagnosis_history", Label: "تاريخ التشخيص", Narrative: true, get: func(f *PatientFields) *string { return &f.DiagnosisHistory }},
	{Key: "propositions_directing", Column: "propositions_directing", Label: "التوجيهات والاقتراحات", Narrative: true, get: func(f *PatientFields) *string { return &f.PropositionsDirecting }},
	{Key: "diagnosis", Column: "diagnosis", Label: "التشخيص", Narrative: true, get: func(f *PatientFields) *string { return &f.Diagnosis }},
	{Key: "curing_program", Column: "curing_program", Label: "الخطة العلاجية", Narrative: true, get: func(f *PatientFields) *string { return &f.CuringProgram }},
	{Key: "evaluation", Column: "evaluation", Label: "التقييم", Narrative: true, get: func(f *PatientFields) *string { return &f.Evaluation }},
	{Key: "reporting", Column: "reporting", Label: "التقرير", Narrative: true, get: func(f *PatientFields) *string { return &f.Reporting }},
	{Key: "photo", Column: "photo", Label: "الصورة", get: func(f *PatientFields) *string { return &f.Photo }},
}

// LookupField returns the field registered under key.
func LookupField(key string) (Field, bool) {
	for _, d := range Fields {
		if d.Key == key {
			return d, true
		}
	}
	return Field{}, false
}

// Columns maps every column name to its value, empty strings included.
func (f PatientFields) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, len(Fields))
	for _, d := range Fields {
		cols[d.Column] = d.Value(&f)
	}
	return cols
}
