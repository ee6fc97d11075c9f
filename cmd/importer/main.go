package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/EnzoLavieri/QualABoa-backend/internal/config"

	"github.com/jackc/pgx/v5"
)

type EstablishmentRecord struct {
	Nome              string
	Descricao         string
	EnderecoFormatado string
	PlaceID           string
	Parceiro          bool
	Lat               float64
	Lng               float64
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	// Ensure table exists
	err = createTableIfNotExists(conn)
	if err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	err = insertRecords(conn, records)
	if err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	err = verifyImport(conn, len(records))
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records\n", len(records))
}

func parseCSV(filePath string) ([]EstablishmentRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	_, err = reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []EstablishmentRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 7 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 7 columns", len(record))
		}

		parceiro, err := strconv.ParseBool(record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid parceiro flag: %s", record[4])
		}

		lat, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude: %s", record[5])
		}

		lng, err := strconv.ParseFloat(record[6], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude: %s", record[6])
		}

		establishment := EstablishmentRecord{
			Nome:              record[0],
			Descricao:         record[1],
			EnderecoFormatado: record[2],
			PlaceID:           record[3],
			Parceiro:          parceiro,
			Lat:               lat,
			Lng:               lng,
		}

		records = append(records, establishment)
	}

	return records, nil
}

func createTableIfNotExists(conn *pgx.Conn) error {
	query := `
	CREATE TABLE IF NOT EXISTS estabelecimentos (
		id BIGSERIAL PRIMARY KEY,
		nome VARCHAR(255) NOT NULL,
		descricao TEXT,
		endereco_formatado VARCHAR(255),
		place_id VARCHAR(255),
		parceiro BOOLEAN NOT NULL DEFAULT FALSE,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS estabelecimentos_geom_idx ON estabelecimentos USING GIST (geom);
	`
	_, err := conn.Exec(context.Background(), query)
	return err
}

func insertRecords(conn *pgx.Conn, records []EstablishmentRecord) error {
	// Use CopyFrom for bulk insert
	_, err := conn.CopyFrom(
		context.Background(),
		pgx.Identifier{"estabelecimentos"},
		[]string{"nome", "descricao", "endereco_formatado", "place_id", "parceiro", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			r := records[i]
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", r.Lng, r.Lat) // PostGIS format: lon lat
			var placeID interface{}
			if r.PlaceID != "" {
				placeID = r.PlaceID
			}
			return []interface{}{r.Nome, r.Descricao, r.EnderecoFormatado, placeID, r.Parceiro, geom}, nil
		}),
	)
	return err
}

func verifyImport(conn *pgx.Conn, expectedCount int) error {
	var count int
	err := conn.QueryRow(context.Background(), "SELECT COUNT(*) FROM estabelecimentos").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}

	// Check a sample geom
	var geom string
	err = conn.QueryRow(context.Background(), "SELECT ST_AsText(geom::geometry) FROM estabelecimentos LIMIT 1").Scan(&geom)
	if err != nil {
		return fmt.Errorf("failed to check geom: %w", err)
	}

	fmt.Printf("Sample geom: %s\n", geom)
	return nil
}
