package interaction

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"paint-estimator/models"
	"paint-estimator/services"
	"paint-estimator/utils"
)

const menuText = "\n[a] Add room  [l] List rooms  [e] Export CSV  [d] Delete room  [q] Quit\nChoose: "

// MenuShell reads single-letter commands line by line.
type MenuShell struct {
	RoomSvc      *services.RoomService
	ReportSvc    *services.ReportService
	ExportPath   string // "-" writes the CSV to Out
	DefaultCoats int

	in     *bufio.Scanner
	lines  chan inputLine
	once   sync.Once
	out    io.Writer
	logger *zap.Logger
}

func NewMenuShell(in io.Reader, out io.Writer, roomSvc *services.RoomService, reportSvc *services.ReportService, exportPath string, defaultCoats int, logger *zap.Logger) *MenuShell {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultCoats < 1 {
		defaultCoats = 2
	}
	return &MenuShell{
		RoomSvc:      roomSvc,
		ReportSvc:    reportSvc,
		ExportPath:   exportPath,
		DefaultCoats: defaultCoats,
		in:           bufio.NewScanner(in),
		lines:        make(chan inputLine),
		out:          out,
		logger:       logger,
	}
}

// Run loops until q, end of input, or ctx cancellation.
func (m *MenuShell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := m.prompt(ctx, menuText)
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a":
			err = m.add(ctx)
		case "l":
			m.list()
		case "e":
			m.export()
		case "d":
			err = m.delete(ctx)
		case "q":
			m.println("Goodbye.")
			return nil
		case "":
		default:
			m.printf("Unknown option: %s\n", strings.TrimSpace(line))
		}

		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *MenuShell) add(ctx context.Context) error {
	name, err := m.prompt(ctx, "Room name: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		m.println("Room name cannot be empty")
		return nil
	}

	in := models.RoomInput{Name: name}
	if in.Length, err = m.readFloat(ctx, "Length (ft): "); err != nil {
		return err
	}
	if in.Width, err = m.readFloat(ctx, "Width (ft): "); err != nil {
		return err
	}
	if in.Height, err = m.readFloat(ctx, "Wall height (ft): "); err != nil {
		return err
	}
	if in.Doors, err = m.readInt(ctx, "Number of doors: ", 0, nil); err != nil {
		return err
	}
	if in.Windows, err = m.readInt(ctx, "Number of windows: ", 0, nil); err != nil {
		return err
	}
	coats := m.DefaultCoats
	if in.Coats, err = m.readInt(ctx, fmt.Sprintf("Coats [%d]: ", coats), 1, &coats); err != nil {
		return err
	}

	room, err := m.RoomSvc.Create(in)
	if err != nil {
		m.println(strings.TrimSuffix(err.Error(), ": "+services.ErrInvalidInput.Error()))
		return nil
	}
	m.printf("Added room: %s (%s sqft with coats)\n", room.Name, utils.FormatArea(room.TotalAreaWithCoats))
	return nil
}

func (m *MenuShell) list() {
	summary := m.ReportSvc.Summarize(m.RoomSvc.List())
	if summary.Empty {
		m.println("No rooms yet.")
		return
	}
	m.printNumbered(summary.Rooms)
	m.printf("%s: %s\n", services.TotalLabel, summary.TotalLabel)
}

func (m *MenuShell) export() {
	data, err := m.ReportSvc.ToCSV(m.RoomSvc.List())
	if err == nil {
		if m.ExportPath == "-" {
			_, err = m.out.Write(data)
		} else {
			err = writeFileAtomic(m.ExportPath, data)
		}
	}
	if err != nil {
		m.logger.Error("export failed", zap.String("path", m.ExportPath), zap.Error(err))
		m.printf("Export failed: %v\n", err)
		return
	}

	m.logger.Info("export written", zap.String("path", m.ExportPath), zap.Int("rooms", m.RoomSvc.Count()))
	if m.ExportPath != "-" {
		m.printf("Exported %d room(s) to %s\n", m.RoomSvc.Count(), m.ExportPath)
	}
}

func (m *MenuShell) delete(ctx context.Context) error {
	rooms := m.RoomSvc.List()
	if len(rooms) == 0 {
		m.println("No rooms to delete.")
		return nil
	}
	m.printNumbered(rooms)

	raw, err := m.prompt(ctx, "Enter number to delete: ")
	if err != nil {
		return err
	}
	room, err := m.RoomSvc.DeleteAtText(raw)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		m.println("Please enter a valid integer")
	case errors.Is(err, services.ErrOutOfRange):
		m.println("Invalid number")
	case err != nil:
		return err
	default:
		m.printf("Deleted room: %s\n", room.Name)
	}
	return nil
}

func (m *MenuShell) printNumbered(rooms []models.Room) {
	for i, r := range rooms {
		m.printf("%d. %s: %s sqft\n", i+1, r.Name, utils.FormatArea(r.TotalAreaWithCoats))
	}
}

// readFloat re-prompts until a non-negative number is entered.
func (m *MenuShell) readFloat(ctx context.Context, label string) (float64, error) {
	for {
		raw, err := m.prompt(ctx, label)
		if err != nil {
			return 0, err
		}
		v, err := utils.ParseNonNegativeFloat(raw)
		if err == nil {
			return v, nil
		}
		m.println("Please enter a valid number")
	}
}

// readInt re-prompts until an integer >= min is entered. A blank line
// yields def when def is non-nil.
func (m *MenuShell) readInt(ctx context.Context, label string, min int, def *int) (int, error) {
	for {
		raw, err := m.prompt(ctx, label)
		if err != nil {
			return 0, err
		}
		if def != nil && strings.TrimSpace(raw) == "" {
			return *def, nil
		}
		v, err := utils.ParseMinInt(raw, min)
		if err == nil {
			return v, nil
		}
		m.println("Please enter a valid integer" + minHint(min))
	}
}

func minHint(min int) string {
	if min <= 0 {
		return ""
	}
	return " (at least " + strconv.Itoa(min) + ")"
}

type inputLine struct {
	text string
	err  error
}

// readLines feeds scanned lines to m.lines so prompt can also wait on ctx.
// It ends with io.EOF or the scanner error.
func (m *MenuShell) readLines() {
	for m.in.Scan() {
		m.lines <- inputLine{text: m.in.Text()}
	}
	err := m.in.Err()
	if err == nil {
		err = io.EOF
	}
	m.lines <- inputLine{err: err}
	close(m.lines)
}

// prompt prints label and waits for the next line or for ctx to end.
func (m *MenuShell) prompt(ctx context.Context, label string) (string, error) {
	m.once.Do(func() { go m.readLines() })

	fmt.Fprint(m.out, label)
	select {
	case <-ctx.Done():
		m.println("")
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return line.text, line.err
	}
}

func (m *MenuShell) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *MenuShell) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// writeFileAtomic replaces path with data in one rename.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".paint_estimate-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set export permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}
