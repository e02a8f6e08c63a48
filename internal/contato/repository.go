package contato

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Contato) error
	BuscarPorID(db *gorm.DB, id uint) (*Contato, error)
	Listar(db *gorm.DB, pagina, limite int) ([]Contato, int64, error)
	MarcarRespondido(db *gorm.DB, id uint) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Contato) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contato, error) {
	var c Contato
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, pagina, limite int) ([]Contato, int64, error) {
	var total int64
	if err := db.Model(&Contato{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var contatos []Contato
	err := db.Order("created_at DESC").
		Offset((pagina - 1) * limite).
		Limit(limite).
		Find(&contatos).Error
	return contatos, total, err
}

func (r *repositoryImpl) MarcarRespondido(db *gorm.DB, id uint) error {
	res := db.Model(&Contato{}).Where("id = ?", id).Update("respondido", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Contato{}, id).Error
}
