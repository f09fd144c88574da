package constants

const (
	// Context keys
	ContextKeyUserID = "userID"
	ContextKeyRole   = "userRole"

	// Setting keys
	SettingSiteTitle       = "site_title"
	SettingSiteDescription = "site_description"
	SettingBackupPassword  = "backup_password"

	SettingGithubRepo           = "github_repo"
	SettingGithubBranch         = "github_branch"
	SettingGithubToken          = "github_token"
	SettingGithubBackupCron     = "github_backup_cron"
	SettingGithubLastBackupHash = "github_last_backup_hash"

	SettingWebdavURL            = "webdav_url"
	SettingWebdavUser           = "webdav_user"
	SettingWebdavPassword       = "webdav_password"
	SettingWebdavBackupCron     = "webdav_backup_cron"
	SettingWebdavLastBackupHash = "webdav_last_backup_hash"
)
