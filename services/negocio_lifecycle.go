package services

import (
	"errors"
	"fmt"

	"github.com/nearbiz/nearbiz-api/events"
	"github.com/nearbiz/nearbiz-api/models"
	"github.com/nearbiz/nearbiz-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NegocioLifecycle orquesta el ciclo de vida de un Negocio junto con
// sus filas dependientes de Usuario y Personal:
//
//	Pendiente (creado inactivo) -> Aprobado -> Suspendido <-> Restaurado
//	                            -> Rechazado (terminal: filas eliminadas)
//
// Cada operación multi-fila corre dentro de una transacción; la
// notificación por correo sale después del commit y nunca revierte la
// operación.
type NegocioLifecycle struct {
	DB     *gorm.DB
	Correo Correo
}

func NewNegocioLifecycle(db *gorm.DB, correo Correo) *NegocioLifecycle {
	return &NegocioLifecycle{DB: db, Correo: correo}
}

// SolicitudNegocio es el alta de negocio con su administrador designado.
type SolicitudNegocio struct {
	Negocio         models.Negocio
	AdminNombre     string
	AdminEmail      string
	AdminContrasena string
}

// Crear inserta Negocio + Usuario administrador + vínculo Personal en
// una sola transacción. El negocio nace inactivo (pendiente de
// aprobación) y sus dependientes también: nada queda a medias si un
// paso falla.
func (s *NegocioLifecycle) Crear(sol *SolicitudNegocio) (*models.Negocio, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(sol.AdminContrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	negocio := sol.Negocio
	negocio.IdNegocio = 0
	negocio.Estado = false

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&negocio).Error; err != nil {
			return err
		}

		admin := models.Usuario{
			Nombre:         sol.AdminNombre,
			Email:          sol.AdminEmail,
			ContrasenaHash: string(hashed),
			IdRol:          models.IdRolAdminNegocio,
			Estado:         false,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		vinculo := models.Personal{
			IdUsuario:    admin.IdUsuario,
			IdNegocio:    negocio.IdNegocio,
			RolEnNegocio: models.RolEnNegocioAdministrador,
			Estado:       false,
		}
		return tx.Create(&vinculo).Error
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastNegocio(events.EventNegocioSolicitud, negocio)
	return &negocio, nil
}

// Aprobar activa el negocio y, en cascada acotada a ese negocio, sus
// vínculos Personal y sus Usuarios. Idempotente: aprobar dos veces deja
// todo activo; solo un id inexistente produce ErrNoEncontrado.
func (s *NegocioLifecycle) Aprobar(idNegocio uint) error {
	if err := s.cascadaEstado(idNegocio, true); err != nil {
		return err
	}

	s.notificarAdmins(idNegocio,
		"Solicitud aprobada - NearBiz",
		"<p>¡Felicidades! Tu negocio ha sido <b>aprobado</b> y ya es visible en el directorio NearBiz.</p>")
	events.BroadcastNegocio(events.EventNegocioAprobado, map[string]interface{}{"IdNegocio": idNegocio})
	return nil
}

// Rechazar es destructivo e irreversible: elimina los vínculos
// Personal, los Usuarios administradores y el propio Negocio. Los
// correos del administrador se capturan antes de borrar las filas.
// Un usuario que conserva vínculo en otro negocio no se elimina.
func (s *NegocioLifecycle) Rechazar(idNegocio uint, motivo string) error {
	var negocio models.Negocio
	if err := s.DB.First(&negocio, "id_negocio = ?", idNegocio).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}

	emails, idsUsuario, err := s.adminsDeNegocio(idNegocio)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_negocio = ?", idNegocio).Delete(&models.Personal{}).Error; err != nil {
			return err
		}
		if len(idsUsuario) > 0 {
			// Tras borrar Personal de este negocio, los vínculos que
			// quedan pertenecen a otros negocios: esos usuarios viven.
			conOtroVinculo := tx.Model(&models.Personal{}).Select("id_usuario")
			if err := tx.
				Where("id_usuario IN ?", idsUsuario).
				Where("id_usuario NOT IN (?)", conOtroVinculo).
				Delete(&models.Usuario{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Negocio{}, "id_negocio = ?", idNegocio).Error
	})
	if err != nil {
		return err
	}

	if motivo == "" {
		motivo = "Tu solicitud no cumplió con los requisitos de la plataforma."
	}
	cuerpo := fmt.Sprintf(
		"<p>Lamentamos informarte que tu solicitud de negocio fue <b>rechazada</b>.</p><p>Motivo: %s</p>",
		motivo)
	for _, email := range emails {
		if err := s.Correo.EnviarCorreo(email, "Solicitud rechazada - NearBiz", cuerpo); err != nil {
			utils.ErrorLogger.Printf("rechazo negocio %d: correo a %s: %v", idNegocio, email, err)
		}
	}
	events.BroadcastNegocio(events.EventNegocioRechazado, map[string]interface{}{"IdNegocio": idNegocio, "Motivo": motivo})
	return nil
}

// Eliminar suspende (soft delete) el negocio y sus dependientes.
func (s *NegocioLifecycle) Eliminar(idNegocio uint) error {
	return s.cascadaEstado(idNegocio, false)
}

// Restaurar revierte la suspensión dejando negocio, Personal y
// Usuarios activos de nuevo.
func (s *NegocioLifecycle) Restaurar(idNegocio uint) error {
	return s.cascadaEstado(idNegocio, true)
}

// cascadaEstado aplica el flag estado al negocio, a sus filas Personal
// y a los Usuarios vinculados, en una transacción. La cascada queda
// acotada a los usuarios de ese único negocio.
func (s *NegocioLifecycle) cascadaEstado(idNegocio uint, estado bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Negocio{}).
			Where("id_negocio = ?", idNegocio).
			Update("estado", estado)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoEncontrado
		}

		if err := tx.Model(&models.Personal{}).
			Where("id_negocio = ?", idNegocio).
			Update("estado", estado).Error; err != nil {
			return err
		}

		sub := tx.Model(&models.Personal{}).
			Select("id_usuario").
			Where("id_negocio = ?", idNegocio)
		usuarios := tx.Model(&models.Usuario{}).
			Where("id_usuario IN (?)", sub)
		if !estado {
			// No se suspende a quien sigue activo en otro negocio.
			activosEnOtro := tx.Model(&models.Personal{}).
				Select("id_usuario").
				Where("id_negocio <> ? AND estado = ?", idNegocio, true)
			usuarios = usuarios.Where("id_usuario NOT IN (?)", activosEnOtro)
		}
		return usuarios.Update("estado", estado).Error
	})
}

// adminsDeNegocio resuelve correos e ids de los usuarios vinculados al negocio.
func (s *NegocioLifecycle) adminsDeNegocio(idNegocio uint) (emails []string, idsUsuario []uint, err error) {
	var usuarios []models.Usuario
	err = s.DB.
		Joins("JOIN Personal ON Personal.id_usuario = Usuarios.id_usuario").
		Where("Personal.id_negocio = ?", idNegocio).
		Find(&usuarios).Error
	if err != nil {
		return nil, nil, err
	}
	for _, u := range usuarios {
		emails = append(emails, u.Email)
		idsUsuario = append(idsUsuario, u.IdUsuario)
	}
	return emails, idsUsuario, nil
}

func (s *NegocioLifecycle) notificarAdmins(idNegocio uint, asunto, cuerpo string) {
	emails, _, err := s.adminsDeNegocio(idNegocio)
	if err != nil {
		utils.ErrorLogger.Printf("negocio %d: resolviendo administradores: %v", idNegocio, err)
		return
	}
	for _, email := range emails {
		if err := s.Correo.EnviarCorreo(email, asunto, cuerpo); err != nil {
			utils.ErrorLogger.Printf("negocio %d: correo a %s: %v", idNegocio, email, err)
		}
	}
}
