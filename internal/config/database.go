package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Postgres holds the records server settings read from the POSTGRES_*
// variables when DATABASE_URL is not set.
type Postgres struct {
	User     string
	Password string
	Host     string
	Port     uint16
	DB       string
	SSLMode  string
}

// postgresEnv lists each variable with its default; an empty default marks
// it required.
var postgresEnv = []struct {
	name, fallback string
	dst            func(*Postgres) *string
}{
	{"POSTGRES_USER", "", func(p *Postgres) *string { return &p.User }},
	{"POSTGRES_HOST", "", func(p *Postgres) *string { return &p.Host }},
	{"POSTGRES_DB", "", func(p *Postgres) *string { return &p.DB }},
	{"POSTGRES_SSLMODE", "disable", func(p *Postgres) *string { return &p.SSLMode }},
}

// password reads POSTGRES_PASSWORD, or the file named by
// POSTGRES_PASSWORD_FILE as docker secrets provide it.
func password() (string, error) {
	if password, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		return password, nil
	}
	path, ok := os.LookupEnv("POSTGRES_PASSWORD_FILE")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func NewPostgres() (*Postgres, error) {
	p := &Postgres{Port: 5432}
	for _, env := range postgresEnv {
		value, ok := os.LookupEnv(env.name)
		if !ok {
			if env.fallback == "" {
				return nil, fmt.Errorf("no %s env variable set", env.name)
			}
			value = env.fallback
		}
		*env.dst(p) = value
	}

	if s, ok := os.LookupEnv("POSTGRES_PORT"); ok {
		port, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unable to convert POSTGRES_PORT to a port: %w", err)
		}
		p.Port = uint16(port)
	}

	var err error
	if p.Password, err = password(); err != nil {
		return nil, fmt.Errorf("unable to load password: %w", err)
	}
	return p, nil
}

func (p Postgres) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(int(p.Port))),
		Path:     "/" + p.DB,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

// PostgresURL prefers DATABASE_URL and falls back to the POSTGRES_*
// variables.
func PostgresURL() (string, error) {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return dbURL, nil
	}
	p, err := NewPostgres()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return p.URL(), nil
}
