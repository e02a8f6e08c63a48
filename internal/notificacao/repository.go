package notificacao

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, n *Notificacao) error
	Listar(db *gorm.DB, pagina, limite int) ([]Notificacao, int64, error)
	BuscarPorID(db *gorm.DB, id uint) (*Notificacao, error)
	MarcarLida(db *gorm.DB, id uint) error
	MarcarTodasLidas(db *gorm.DB) error
	ContarNaoLidas(db *gorm.DB) (int64, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, n *Notificacao) error {
	return db.Create(n).Error
}

// Listar devolve a página pedida, mais recentes primeiro, e o total.
func (r *repositoryImpl) Listar(db *gorm.DB, pagina, limite int) ([]Notificacao, int64, error) {
	var total int64
	if err := db.Model(&Notificacao{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var itens []Notificacao
	err := db.Order("created_at DESC").
		Offset((pagina - 1) * limite).
		Limit(limite).
		Find(&itens).Error
	return itens, total, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Notificacao, error) {
	var n Notificacao
	err := db.First(&n, id).Error
	return &n, err
}

func (r *repositoryImpl) MarcarLida(db *gorm.DB, id uint) error {
	res := db.Model(&Notificacao{}).Where("id = ?", id).Update("lida", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) MarcarTodasLidas(db *gorm.DB) error {
	return db.Model(&Notificacao{}).Where("lida = ?", false).Update("lida", true).Error
}

func (r *repositoryImpl) ContarNaoLidas(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&Notificacao{}).Where("lida = ?", false).Count(&n).Error
	return n, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Notificacao{}, id).Error
}
