package handlers

import (
	"github.com/labstack/echo/v4"
	"github/universalwallet/wallet-bridge/internal/api"
	"github/universalwallet/wallet-bridge/internal/api/handlers/bridge"
	"github/universalwallet/wallet-bridge/internal/api/handlers/common"
	"github/universalwallet/wallet-bridge/internal/api/handlers/networks"
	"github/universalwallet/wallet-bridge/internal/api/handlers/tokens"
	"github/universalwallet/wallet-bridge/internal/api/handlers/wallet"
)

// AttachAllRoutes binds every route of the service onto the server's groups.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),

		bridge.GetPendingRequestRoute(s),
		bridge.PostApproveRequestRoute(s),
		bridge.PostRejectRequestRoute(s),
		bridge.PostContinueRequestRoute(s),

		wallet.GetWalletStateRoute(s),
		wallet.PostCreateWalletRoute(s),
		wallet.PostImportWalletRoute(s),
		wallet.PostUnlockWalletRoute(s),
		wallet.PostLockWalletRoute(s),
		wallet.GetAccountsRoute(s),
		wallet.PostCreateAccountRoute(s),
		wallet.PostImportAccountRoute(s),
		wallet.PostSwitchAccountRoute(s),
		wallet.PostRenameAccountRoute(s),
		wallet.PostRevealMnemonicRoute(s),
		wallet.PostRevealPrivateKeyRoute(s),
		wallet.GetBalanceRoute(s),
		wallet.GetPermissionsRoute(s),

		networks.GetNetworksRoute(s),
		networks.PostAddNetworkRoute(s),
		networks.PutUpdateNetworkRoute(s),
		networks.DeleteNetworkRoute(s),
		networks.PostSwitchNetworkRoute(s),

		tokens.GetTokensRoute(s),
		tokens.PostAddTokenRoute(s),
		tokens.DeleteTokenRoute(s),
		tokens.PostUpdateTokenBalanceRoute(s),
		tokens.GetPopularTokensRoute(s),
	}
}
