package db

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetDB abre a conexão Postgres a partir das variáveis de ambiente.
func GetDB() (*gorm.DB, error) {
	porta, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		porta = 5432
	}

	return ConnectDataBase(uint(porta),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
	)
}

func ConnectDataBase(porta uint, host, usuario, senha, nome string) (*gorm.DB, error) {
	var sslMode string
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		host, usuario, senha, nome, porta, sslMode)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}
