package models

import "time"

// PatientFields holds every descriptive field of an intake record.
// All fields are free text; an absent value is the empty string.
type PatientFields struct {
	FullName              string `json:"full_name" yaml:"full_name" gorm:"column:firstname_familyname"`
	Age                   string `json:"age" yaml:"age" gorm:"column:age"` // Stored as text, never parsed
	Sex                   string `json:"sex" yaml:"sex" gorm:"column:sex"`
	EducationLevel        string `json:"education_level" yaml:"education_level" gorm:"column:education_level"`
	Address               string `json:"address" yaml:"address" gorm:"column:address"`
	Information           string `json:"information" yaml:"information" gorm:"column:information;type:text"`
	Character             string `json:"character" yaml:"character" gorm:"column:character;type:text"`
	ReasonVisit           string `json:"reason_visit" yaml:"reason_visit" gorm:"column:reason_visit"`
	FromWhom              string `json:"from_whom" yaml:"from_whom" gorm:"column:from_whom"` // Referral source
	HistoryIllness        string `json:"history_illness" yaml:"history_illness" gorm:"column:history_illness;type:text"`
	PsychiatricHistory    string `json:"psychiatric_history" yaml:"psychiatric_history" gorm:"column:psychiatric_history;type:text"`
	ClinicFollow          string `json:"clinic_follow" yaml:"clinic_follow" gorm:"column:clinic_follow;type:text"`
	DiagnosisHistory      string `json:"diagnosis_history" yaml:"diagnosis_history" gorm:"column:diagnosis_history;type:text"`
	PropositionsDirecting string `json:"propositions_directing" yaml:"propositions_directing" gorm:"column:propositions_directing;type:text"`
	Diagnosis             string `json:"diagnosis" yaml:"diagnosis" gorm:"column:diagnosis;type:text"`
	CuringProgram         string `json:"curing_program" yaml:"curing_program" gorm:"column:curing_program;type:text"`
	Evaluation            string `json:"evaluation" yaml:"evaluation" gorm:"column:evaluation;type:text"`
	Reporting             string `json:"reporting" yaml:"reporting" gorm:"column:reporting;type:text"`
	Photo                 string `json:"photo" yaml:"photo" gorm:"column:photo"` // Filename inside the asset directory
}

// Patient is a clinical intake record.
type Patient struct {
	ID            uint `json:"id" gorm:"primaryKey;autoIncrement"`
	PatientFields `gorm:"embedded"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps the table name of existing databases.
func (Patient) TableName() string {
	return "patients"
}

// PatientSummary is the projection shown in the patient list.
type PatientSummary struct {
	ID          uint   `json:"id" gorm:"column:id"`
	FullName    string `json:"full_name" gorm:"column:firstname_familyname"`
	Age         string `json:"age" gorm:"column:age"`
	Address     string `json:"address" gorm:"column:address"`
	ReasonVisit string `json:"reason_visit" gorm:"column:reason_visit"`
}

// Summary returns the list projection of the record.
func (p *Patient) Summary() PatientSummary {
	return PatientSummary{
		ID:          p.ID,
		FullName:    p.FullName,
		Age:         p.Age,
		Address:     p.Address,
		ReasonVisit: p.ReasonVisit,
	}
}
