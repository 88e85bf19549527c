package taskctl

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Controller is a small state machine over {NotRegistered, Registered}.
// The scheduler itself is the source of truth: no installed-state flag is
// kept anywhere, and idempotence comes from tolerating "already absent"
// during unregistration.
type Controller struct {
	backend Backend
	log     zerolog.Logger
}

// NewController wires a Controller to its platform backend.
func NewController(b Backend, log zerolog.Logger) *Controller {
	return &Controller{backend: b, log: log}
}

// Install registers the task, daemon or timer from the already-updated
// configuration artifact.
func (c *Controller) Install() error {
	if err := c.backend.Register(); err != nil {
		return fmt.Errorf("%w: %v", ErrRegistration, err)
	}
	c.log.Info().Msg("registration created")
	return nil
}

// Reinstall replaces any prior registration with a fresh one. A failed
// unregistration is only a warning here: the prior registration may simply
// not exist.
func (c *Controller) Reinstall() error {
	if err := c.backend.Unregister(); err != nil {
		c.log.Warn().Err(err).Msg("previous registration could not be removed, continuing")
	}
	return c.Install()
}

// Uninstall removes the registration. An "already absent"-class failure is
// a successful no-op; anything else is fatal.
func (c *Controller) Uninstall() error {
	err := c.backend.Unregister()
	if err == nil {
		c.log.Info().Msg("registration removed")
		return nil
	}
	if c.backend.Absent(err) {
		c.log.Warn().Err(err).Msg("registration was already absent")
		return nil
	}
	return fmt.Errorf("%w: %v", ErrRegistration, err)
}

// PostRemove lets the backend react to the artifact files being deleted.
func (c *Controller) PostRemove() error {
	if err := c.backend.PostRemove(); err != nil {
		return fmt.Errorf("%w: %v", ErrRegistration, err)
	}
	return nil
}

// Registered probes the native scheduler. Probe failures read as "not
// registered"; this is only used for status reporting.
func (c *Controller) Registered() bool {
	return c.backend.Registered()
}
