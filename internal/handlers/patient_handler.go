package handlers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/repositories"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/services"
)

// PreviewLength is the number of characters of a narrative field shown by
// "patient show" unless --full is given.
const PreviewLength = 100

// PatientHandler exposes patient records on the command line.
type PatientHandler struct {
	service *services.PatientService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{
		service: service,
	}
}

// RegisterCommands adds the patient command group to root and returns it.
func (h *PatientHandler) RegisterCommands(root *cobra.Command) *cobra.Command {
	patientCmd := &cobra.Command{
		Use:   "patient",
		Short: "Manage patient intake records",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a patient record",
		Long: `Create a patient record from flags and/or a YAML intake file.

Flags override values read from the intake file. The "photo" key of an intake
file, like --photo, names an image to import into the asset directory.

Example:
  clinic patient add --full-name "سليم العربي" --age 45
  clinic patient add --from-file intake.yaml --photo face.jpg`,
		Args: cobra.NoArgs,
		RunE: h.HandleAdd,
	}
	addFieldFlags(addCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all patients",
		Args:  cobra.NoArgs,
		RunE:  h.HandleList,
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a patient profile",
		Args:  cobra.ExactArgs(1),
		RunE:  h.HandleShow,
	}
	showCmd.Flags().Bool("full", false, "Print narrative sections in full")

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Modify a patient record",
		Long:  `Modify a patient record. Only the fields given as flags or in the intake file change.`,
		Args:  cobra.ExactArgs(1),
		RunE:  h.HandleUpdate,
	}
	addFieldFlags(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a patient record",
		Args:  cobra.ExactArgs(1),
		RunE:  h.HandleDelete,
	}

	patientCmd.AddCommand(addCmd, listCmd, showCmd, updateCmd, deleteCmd)
	root.AddCommand(patientCmd)
	return patientCmd
}

// FlagName returns the command line flag of a record field.
func FlagName(f models.Field) string {
	return strings.ReplaceAll(f.Key, "_", "-")
}

func addFieldFlags(cmd *cobra.Command) {
	for _, f := range models.Fields {
		if f.Key == "photo" {
			continue
		}
		cmd.Flags().String(FlagName(f), "", f.Label)
	}
	cmd.Flags().String("from-file", "", "YAML intake file")
	cmd.Flags().String("photo", "", "Image to import as the patient photo")
}

// HandleAdd creates a patient record.
func (h *PatientHandler) HandleAdd(cmd *cobra.Command, args []string) error {
	var fields models.PatientFields
	if err := h.applyInput(cmd, &fields); err != nil {
		return err
	}

	id, err := h.service.CreatePatient(fields)
	if err != nil {
		return fmt.Errorf("could not create patient: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created patient %d\n", id)
	return nil
}

// HandleList prints the patient summaries.
func (h *PatientHandler) HandleList(cmd *cobra.Command, args []string) error {
	summaries, err := h.service.ListPatients()
	if err != nil {
		return fmt.Errorf("could not list patients: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No patients recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE\tADDRESS\tREASON")
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.FullName, s.Age, s.Address, oneLine(s.ReasonVisit))
	}
	return w.Flush()
}

// HandleShow prints the profile of one patient.
func (h *PatientHandler) HandleShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	full, _ := cmd.Flags().GetBool("full")

	patient, err := h.service.GetPatient(id)
	if err != nil {
		return describe(id, err)
	}
	profileView{full: full}.write(cmd.OutOrStdout(), patient)
	return nil
}

// HandleUpdate overwrites the given fields of an existing record.
func (h *PatientHandler) HandleUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	patient, err := h.service.GetPatient(id)
	if err != nil {
		return describe(id, err)
	}
	fields := patient.PatientFields
	if err := h.applyInput(cmd, &fields); err != nil {
		return err
	}

	if err := h.service.UpdatePatient(id, fields); err != nil {
		return describe(id, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated patient %d\n", id)
	return nil
}

// HandleDelete removes a record.
func (h *PatientHandler) HandleDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := h.service.DeletePatient(id); err != nil {
		return fmt.Errorf("could not delete patient %d: %w", id, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted patient %d\n", id)
	return nil
}

// applyInput merges the intake file, the field flags and the photo into fields.
func (h *PatientHandler) applyInput(cmd *cobra.Command, fields *models.PatientFields) error {
	var photoSource string

	if path, _ := cmd.Flags().GetString("from-file"); path != "" {
		values, err := readIntake(path)
		if err != nil {
			return err
		}
		for key, v := range values {
			if key == "photo" {
				photoSource = v
				continue
			}
			f, ok := models.LookupField(key)
			if !ok {
				return fmt.Errorf("intake file %s: unknown field %q", path, key)
			}
			f.Set(fields, v)
		}
	}

	for _, f := range models.Fields {
		if f.Key == "photo" {
			continue
		}
		if flag := cmd.Flags().Lookup(FlagName(f)); flag != nil && flag.Changed {
			f.Set(fields, flag.Value.String())
		}
	}

	if p, _ := cmd.Flags().GetString("photo"); p != "" {
		photoSource = p
	}
	if photoSource != "" {
		name, err := h.service.StorePhoto(photoSource)
		if err != nil {
			return fmt.Errorf("could not import photo: %w", err)
		}
		fields.Photo = name
	}
	return nil
}

func readIntake(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intake file: %w", err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse intake file %s: %w", path, err)
	}
	return values, nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid patient id %q", s)
	}
	return uint(id), nil
}

func describe(id uint, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("patient %d not found: %w", id, err)
	}
	return err
}

// profileView renders a record for the terminal. Truncation is view state
// only; the record itself is never shortened.
type profileView struct {
	full bool
}

func (v profileView) write(w io.Writer, p *models.Patient) {
	fmt.Fprintf(w, "ID: %d\n", p.ID)
	for _, f := range models.Fields {
		value := f.Value(&p.PatientFields)
		if f.Narrative {
			if !v.full {
				value = truncate(value, PreviewLength)
			}
			fmt.Fprintf(w, "%s:\n%s\n", f.Label, value)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", f.Label, value)
	}
}

// truncate shortens s to n characters followed by "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
