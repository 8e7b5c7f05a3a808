package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-arrower/records/aindex"
	"github.com/go-arrower/records/arepo"
)

type (
	PatientID      int
	PrescriptionID int
)

type Patient struct {
	ID     PatientID `json:"id"`
	Name   string    `json:"name"   validate:"required"`
	Age    int       `json:"age"    validate:"gte=0,lte=150"`
	Gender string    `json:"gender"`
}

func (p Patient) String() string {
	return fmt.Sprintf("#%d %s, %d, %s", p.ID, p.Name, p.Age, p.Gender)
}

type Prescription struct {
	ID             PrescriptionID `json:"id"`
	PatientID      PatientID      `json:"patientId"      validate:"required"`
	MedicationName string         `json:"medicationName" validate:"required"`
	DateIssued     time.Time      `json:"dateIssued"`
}

func (p Prescription) String() string {
	return fmt.Sprintf("#%d %s, issued %s", p.ID, p.MedicationName, p.DateIssued.Format(time.DateOnly))
}

type (
	PatientRepository      = arepo.Repository[Patient, PatientID]
	PrescriptionRepository = arepo.Repository[Prescription, PrescriptionID]

	// PrescriptionIndex groups prescriptions by the patient they are issued for.
	// It is a snapshot and has to be rebuilt after prescriptions change.
	PrescriptionIndex = aindex.GroupIndex[PatientID, Prescription]
)

func NewPrescriptionIndex() *PrescriptionIndex {
	return aindex.New[PatientID, Prescription]()
}

// ByPatient is the key of the PrescriptionIndex.
func ByPatient(p Prescription) PatientID {
	return p.PatientID
}

// SortByDateIssued orders prescriptions from oldest to newest.
// Prescriptions issued at the same time keep their order.
func SortByDateIssued(prescriptions []Prescription) {
	slices.SortStableFunc(prescriptions, func(a, b Prescription) int {
		return a.DateIssued.Compare(b.DateIssued)
	})
}
