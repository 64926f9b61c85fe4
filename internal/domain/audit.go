package domain

// Entity types recorded in the audit log
const (
	EntityUser         = "user"
	EntityLab          = "lab"
	EntityFluorochrome = "fluorochrome"
	EntityAntibody     = "antibody"
	EntityLot          = "lot"
	EntityVial         = "vial"
	EntityStorageUnit  = "storage_unit"
	EntityDocument     = "document"
	EntityTicket       = "ticket"
)

// Audit actions, named entity.verb
const (
	ActionUserLogin          = "user.login"
	ActionUserLogout         = "user.logout"
	ActionUserCreate         = "user.create"
	ActionUserUpdate         = "user.update"
	ActionUserResetPassword  = "user.reset_password"
	ActionUserChangePassword = "user.change_password"

	ActionLabCreate     = "lab.create"
	ActionLabUpdate     = "lab.update"
	ActionLabSettings   = "lab.update_settings"
	ActionLabSuspend    = "lab.suspend"
	ActionLabReactivate = "lab.reactivate"

	ActionFluorochromeCreate = "fluorochrome.create"
	ActionFluorochromeUpdate = "fluorochrome.update"
	ActionFluorochromeDelete = "fluorochrome.delete"

	ActionAntibodyCreate  = "antibody.create"
	ActionAntibodyUpdate  = "antibody.update"
	ActionAntibodyArchive = "antibody.archive"

	ActionLotCreate      = "lot.create"
	ActionLotUpdate      = "lot.update"
	ActionLotReceive     = "lot.receive"
	ActionLotQC          = "lot.qc_status"
	ActionLotDepleteAll  = "lot.deplete_all"
	ActionLotArchive     = "lot.archive"
	ActionVialOpen       = "vial.open"
	ActionVialDeplete    = "vial.deplete"
	ActionVialMove       = "vial.move"
	ActionVialReturn     = "vial.return_to_storage"
	ActionStorageCreate  = "storage_unit.create"
	ActionStorageUpdate  = "storage_unit.update"
	ActionStorageDelete  = "storage_unit.delete"
	ActionDocumentUpload = "document.upload"
	ActionDocumentDelete = "document.delete"

	ActionTicketCreate  = "ticket.create"
	ActionTicketStatus  = "ticket.update_status"
	ActionTicketComment = "ticket.comment"
)
