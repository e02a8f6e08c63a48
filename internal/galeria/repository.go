package galeria

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, i *Imagem) error
	BuscarPorID(db *gorm.DB, id uint) (*Imagem, error)
	Listar(db *gorm.DB, pagina, limite int) ([]Imagem, int64, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, i *Imagem) error {
	return db.Create(i).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Imagem, error) {
	var i Imagem
	err := db.First(&i, id).Error
	return &i, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, pagina, limite int) ([]Imagem, int64, error) {
	var total int64
	if err := db.Model(&Imagem{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var imagens []Imagem
	err := db.Order("created_at DESC").
		Offset((pagina - 1) * limite).
		Limit(limite).
		Find(&imagens).Error
	return imagens, total, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Imagem{}, id).Error
}
