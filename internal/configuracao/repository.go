package configuracao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Listar(db *gorm.DB) ([]Configuracao, error)
	Buscar(db *gorm.DB, chave string) (*Configuracao, error)
	Definir(db *gorm.DB, chave, valor string) (*Configuracao, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB) ([]Configuracao, error) {
	var itens []Configuracao
	err := db.Order("chave").Find(&itens).Error
	return itens, err
}

func (r *repositoryImpl) Buscar(db *gorm.DB, chave string) (*Configuracao, error) {
	var c Configuracao
	err := db.Where("chave = ?", chave).First(&c).Error
	return &c, err
}

// Definir faz upsert pela chave.
func (r *repositoryImpl) Definir(db *gorm.DB, chave, valor string) (*Configuracao, error) {
	c := &Configuracao{Chave: chave, Valor: valor}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "updated_at"}),
	}).Create(c).Error
	if err != nil {
		return nil, err
	}
	return r.Buscar(db, chave)
}
