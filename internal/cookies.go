package internal

const COOKIE_REDIRECT_NAME = "ilanver_redirect"

const COOKIE_FLASH_NAME = "ilanver_flash"
