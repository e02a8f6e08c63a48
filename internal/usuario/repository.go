package usuario

import (
	"github.com/VerdeRaiz/api-ong/internal/auth"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	Criar(db *gorm.DB, u *Usuario) error
	Salvar(db *gorm.DB, u *Usuario) error
	Listar(db *gorm.DB, pagina, limite int) ([]Usuario, int64, error)
	Deletar(db *gorm.DB, id uint) error
	ExisteAdmin(db *gorm.DB) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	err := db.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) Criar(db *gorm.DB, u *Usuario) error {
	return db.Create(u).Error
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) Listar(db *gorm.DB, pagina, limite int) ([]Usuario, int64, error) {
	var total int64
	if err := db.Model(&Usuario{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var usuarios []Usuario
	err := db.Order("created_at DESC").
		Offset((pagina - 1) * limite).
		Limit(limite).
		Find(&usuarios).Error
	return usuarios, total, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Usuario{}, id).Error
}

// ExisteAdmin apoia a regra de admin único na criação.
func (r *repositoryImpl) ExisteAdmin(db *gorm.DB) (bool, error) {
	var n int64
	err := db.Model(&Usuario{}).Where("papel = ?", auth.PapelAdmin).Count(&n).Error
	return n > 0, err
}
