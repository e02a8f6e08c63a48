package campanha

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Campanha) error
	Salvar(db *gorm.DB, c *Campanha) error
	BuscarPorID(db *gorm.DB, id uint) (*Campanha, error)
	BuscarPorSlug(db *gorm.DB, slug string) (*Campanha, error)
	Listar(db *gorm.DB, pagina, limite int, somenteAtivas bool) ([]Campanha, int64, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Campanha) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Campanha) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Campanha, error) {
	var c Campanha
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) BuscarPorSlug(db *gorm.DB, slug string) (*Campanha, error) {
	var c Campanha
	err := db.Where("slug = ?", slug).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) Listar(db *gorm.DB, pagina, limite int, somenteAtivas bool) ([]Campanha, int64, error) {
	consulta := db.Model(&Campanha{})
	if somenteAtivas {
		consulta = consulta.Where("ativa = ?", true)
	}
	var total int64
	if err := consulta.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var campanhas []Campanha
	err := consulta.Order("created_at DESC").
		Offset((pagina - 1) * limite).
		Limit(limite).
		Find(&campanhas).Error
	return campanhas, total, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Campanha{}, id).Error
}
