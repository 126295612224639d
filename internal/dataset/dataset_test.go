package dataset_test

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/daedalus/internal/dataset"
	"github.com/UnknownOlympus/daedalus/internal/fakedata"
	"github.com/UnknownOlympus/daedalus/internal/generator"
	"github.com/UnknownOlympus/daedalus/internal/metrics"
	"github.com/UnknownOlympus/daedalus/internal/models"
	mocks "github.com/UnknownOlympus/daedalus/mock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(t *testing.T, gen dataset.RecordGenerator) (*dataset.Builder, *metrics.Metrics) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return dataset.NewBuilder(logger, gen, appMetrics), appMetrics
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	return rows
}

// stubSource returns fixed values and a counter-based email, like a deterministic faker.
func stubSource(t *testing.T) *mocks.Source {
	t.Helper()

	src := mocks.NewSource(t)
	src.On("FirstName").Return("Ada")
	src.On("LastName").Return("Lovelace")
	src.On("JobTitle").Return("Engineer, civil (contracting)")
	src.On("Address").Return("12 Main St\nSpringfield, IL 62704")

	var counter int
	src.On("Email").Return(func() string {
		counter++
		return "employee" + strconv.Itoa(counter) + "@example.com"
	})

	return src
}

func TestBuild_Properties(t *testing.T) {
	defer filet.CleanUp(t)
	path := filepath.Join(filet.TmpDir(t, ""), dataset.FileName)

	gen := generator.New(fakedata.New(2024), generator.NewSeeded(2024))
	builder, appMetrics := newBuilder(t, gen)

	summary, err := builder.Build(t.Context(), path, dataset.NumEmployees)
	require.NoError(t, err)

	assert.Equal(t, dataset.NumEmployees, summary.Generated)
	assert.Equal(t, summary.Generated, summary.Written+summary.Dropped)
	assert.InDelta(t, float64(summary.Written), testutil.ToFloat64(appMetrics.RecordsWritten), 0)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, summary.Written+1, strings.Count(string(content), "\n"))

	rows := readRows(t, path)
	require.Len(t, rows, summary.Written+1)
	assert.Equal(t, models.FieldNames, rows[0])

	emails := make(map[string]struct{})
	for _, row := range rows[1:] {
		require.Len(t, row, len(models.FieldNames))
		for _, value := range row {
			assert.NotEmpty(t, value)
			assert.NotContains(t, value, ",")
			assert.NotContains(t, value, "\n")
		}

		emails[row[4]] = struct{}{}
		assert.True(t, models.Department(row[3]).IsValid(), row[3])

		phone, phoneErr := strconv.ParseInt(row[6], 10, 64)
		require.NoError(t, phoneErr)
		assert.True(t, phone >= generator.PhoneMin && phone <= generator.PhoneMax, row[6])

		salary, salaryErr := strconv.Atoi(row[7])
		require.NoError(t, salaryErr)
		assert.True(t, salary >= generator.SalaryMin && salary <= generator.SalaryMax, row[7])

		assert.Len(t, row[8], generator.PasswordLength)
		for _, r := range row[8] {
			assert.True(t, strings.ContainsRune(generator.PasswordAlphabet, r))
		}
	}
	assert.Len(t, emails, summary.Written)
}

func TestBuild_WritesAllRecordsWithStubSource(t *testing.T) {
	defer filet.CleanUp(t)
	path := filepath.Join(filet.TmpDir(t, ""), dataset.FileName)

	builder, _ := newBuilder(t, generator.New(stubSource(t), generator.NewSeeded(1)))

	summary, err := builder.Build(t.Context(), path, dataset.NumEmployees)
	require.NoError(t, err)
	assert.Equal(t, dataset.NumEmployees, summary.Written)
	assert.Zero(t, summary.Dropped)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	assert.Len(t, lines, 101)
	assert.Equal(t, strings.Join(models.FieldNames, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1],
		"Ada,Lovelace,Engineer civil (contracting),"), lines[1])
	assert.Contains(t, lines[1], ",employee1@example.com,12 Main St Springfield IL 62704,")
}

func TestBuild_ByteIdenticalForFixedSeed(t *testing.T) {
	defer filet.CleanUp(t)
	dir := filet.TmpDir(t, "")

	build := func(name string) []byte {
		path := filepath.Join(dir, name)
		builder, _ := newBuilder(t, generator.New(stubSource(t), generator.NewSeeded(77)))
		_, err := builder.Build(t.Context(), path, dataset.NumEmployees)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)

		return content
	}

	first := build("first.csv")
	second := build("second.csv")

	assert.True(t, bytes.Equal(first, second))
}

type scriptedGenerator struct {
	records []models.EmployeeRecord
	next    int
	panicAt int
}

func (s *scriptedGenerator) Generate() models.EmployeeRecord {
	if s.panicAt > 0 && s.next == s.panicAt {
		panic("fake data source failed")
	}
	record := s.records[s.next%len(s.records)]
	s.next++

	return record
}

func (s *scriptedGenerator) Collisions() int { return 0 }

func completeRecord(email string) models.EmployeeRecord {
	return models.EmployeeRecord{
		FirstName: "Ada", LastName: "Lovelace", JobTitle: "Analyst", Department: "IT",
		Email: email, Address: "London", PhoneNumber: "4155550100", Salary: "90000", Password: "aB3dE5gH",
	}
}

func TestBuild_DropsRecordsWithEmptyFields(t *testing.T) {
	defer filet.CleanUp(t)
	path := filepath.Join(filet.TmpDir(t, ""), dataset.FileName)

	blankName := completeRecord("b@example.com")
	blankName.FirstName = " \n "
	onlyCommas := completeRecord("c@example.com")
	onlyCommas.Address = ",,"

	gen := &scriptedGenerator{records: []models.EmployeeRecord{
		completeRecord("a@example.com"), blankName, onlyCommas,
	}}
	builder, appMetrics := newBuilder(t, gen)

	summary, err := builder.Build(t.Context(), path, 3)
	require.NoError(t, err)

	assert.Equal(t, dataset.Summary{Path: path, Generated: 3, Written: 1, Dropped: 2}, summary)
	assert.InDelta(t, 2.0, testutil.ToFloat64(appMetrics.RecordsDropped), 0)

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "a@example.com", rows[1][4])
}

func TestBuild_FlushesFileWhenGeneratorPanics(t *testing.T) {
	defer filet.CleanUp(t)
	path := filepath.Join(filet.TmpDir(t, ""), dataset.FileName)

	gen := &scriptedGenerator{records: []models.EmployeeRecord{completeRecord("a@example.com")}, panicAt: 1}
	builder, _ := newBuilder(t, gen)

	assert.Panics(t, func() {
		_, _ = builder.Build(t.Context(), path, 5)
	})

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, models.FieldNames, rows[0])
	assert.Equal(t, "a@example.com", rows[1][4])
}

func TestBuild_CreateError(t *testing.T) {
	builder, _ := newBuilder(t, &scriptedGenerator{records: []models.EmployeeRecord{completeRecord("a@x")}})

	_, err := builder.Build(t.Context(), filepath.Join(t.TempDir(), "missing", "out.csv"), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create dataset file")
}

func TestWriteCSV_MinimalQuoting(t *testing.T) {
	t.Parallel()

	record := completeRecord("a@example.com")
	record.JobTitle = `Officer "A"`
	record.Address = "1 Road, Town"

	var buf bytes.Buffer
	require.NoError(t, dataset.WriteCSV(&buf, []models.EmployeeRecord{record}))

	want := strings.Join(models.FieldNames, ",") + "\n" +
		`Ada,Lovelace,"Officer ""A""",IT,a@example.com,"1 Road, Town",4155550100,90000,aB3dE5gH` + "\n"
	assert.Equal(t, want, buf.String())
}
