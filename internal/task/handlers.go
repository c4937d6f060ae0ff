package task

import (
	"fmt"
	"os"

	"github.com/aicers/roxy/internal/hwinfo"
	"github.com/aicers/roxy/internal/ifconfig"
	"github.com/aicers/roxy/internal/ntp"
	"github.com/aicers/roxy/internal/oscmd"
	"github.com/aicers/roxy/internal/services"
	"github.com/aicers/roxy/internal/sshd"
	"github.com/aicers/roxy/internal/syslog"
	"github.com/aicers/roxy/internal/ufw"
	"github.com/aicers/roxy/protocol"
)

// PowerController performs the immediate power-state syscalls.
type PowerController interface {
	Reboot() error
	PowerOff() error
}

// Resources are the collaborators the real handler set drives.
type Resources struct {
	Engine *ifconfig.Engine
	Ntp    *ntp.Client
	Syslog *syslog.Client
	Sshd   *sshd.Client
	Ufw    *ufw.Client
	Info   *hwinfo.Info
	Exec   oscmd.Executor
	Power  PowerController
}

// DefaultResources wires every collaborator to the host defaults.
func DefaultResources() Resources {
	return Resources{
		Engine: ifconfig.NewEngine(),
		Ntp:    ntp.New(),
		Syslog: syslog.New(),
		Sshd:   sshd.New(),
		Ufw:    ufw.New(),
		Info:   hwinfo.New(),
		Exec:   oscmd.Default,
		Power:  DefaultPower(),
	}
}

// New returns an executor with the full command registry bound to r.
func New(r Resources) *Executor {
	e := NewExecutor()

	e.Register(protocol.KindHostname, protocol.CmdGet, func(*protocol.Request) (any, error) {
		return os.Hostname()
	})
	e.Register(protocol.KindHostname, protocol.CmdSet, func(req *protocol.Request) (any, error) {
		name, err := argument[string](req)
		if err != nil {
			return nil, err
		}
		if err := r.Exec.Run("hostnamectl", "set-hostname", name); err != nil {
			return nil, fmt.Errorf("set hostname: %w", err)
		}
		return protocol.Okay, nil
	})

	e.Register(protocol.KindInterface, protocol.CmdGet, func(req *protocol.Request) (any, error) {
		name, err := argument[*string](req)
		if err != nil {
			return nil, err
		}
		return r.Engine.Get(name)
	})
	e.Register(protocol.KindInterface, protocol.CmdList, func(req *protocol.Request) (any, error) {
		prefix, err := argument[*string](req)
		if err != nil {
			return nil, err
		}
		return r.Engine.List(prefix)
	})
	e.Register(protocol.KindInterface, protocol.CmdSet, func(req *protocol.Request) (any, error) {
		arg, err := argument[protocol.InterfaceRequest](req)
		if err != nil {
			return nil, err
		}
		if err := r.Engine.Set(arg.Name, &arg.Nic); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	})
	e.Register(protocol.KindInterface, protocol.CmdInit, func(req *protocol.Request) (any, error) {
		name, err := argument[string](req)
		if err != nil {
			return nil, err
		}
		if err := r.Engine.Init(name); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	})
	e.Register(protocol.KindInterface, protocol.CmdDelete, func(req *protocol.Request) (any, error) {
		arg, err := argument[protocol.InterfaceRequest](req)
		if err != nil {
			return nil, err
		}
		if err := r.Engine.Delete(arg.Name, &arg.Nic); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	})

	e.Register(protocol.KindNtp, protocol.CmdGet, func(*protocol.Request) (any, error) {
		return r.Ntp.Get()
	})
	e.Register(protocol.KindNtp, protocol.CmdSet, func(req *protocol.Request) (any, error) {
		servers, err := argument[[]string](req)
		if err != nil {
			return nil, err
		}
		if err := r.Ntp.Set(servers); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	})
	e.Register(protocol.KindNtp, protocol.CmdEnable, okay(r.Ntp.Enable))
	e.Register(protocol.KindNtp, protocol.CmdDisable, okay(r.Ntp.Disable))
	e.Register(protocol.KindNtp, protocol.CmdStatus, func(*protocol.Request) (any, error) {
		return r.Ntp.IsActive(), nil
	})

	e.Register(protocol.KindSyslog, protocol.CmdGet, func(*protocol.Request) (any, error) {
		return r.Syslog.Get()
	})
	e.Register(protocol.KindSyslog, protocol.CmdSet, func(req *protocol.Request) (any, error) {
		addrs, err := argument[[]string](req)
		if err != nil {
			return nil, err
		}
		if err := r.Syslog.Set(addrs); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	})
	e.Register(protocol.KindSyslog, protocol.CmdInit, okay(r.Syslog.Init))
	e.Register(protocol.KindSyslog, protocol.CmdEnable, okay(r.Syslog.Start))

	e.Register(protocol.KindSshd, protocol.CmdGet, func(*protocol.Request) (any, error) {
		return r.Sshd.Port()
	})
	e.Register(protocol.KindSshd, protocol.CmdSet, func(req *protocol.Request) (any, error) {
		port, err := argument[string](req)
		if err != nil {
			return nil, err
		}
		if err := r.Sshd.SetPort(port); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	})
	e.Register(protocol.KindSshd, protocol.CmdEnable, okay(r.Sshd.Start))

	for _, cmd := range []protocol.SubCommand{
		protocol.CmdDisable, protocol.CmdEnable, protocol.CmdStatus, protocol.CmdUpdate,
	} {
		e.Register(protocol.KindService, cmd, func(req *protocol.Request) (any, error) {
			unit, err := argument[string](req)
			if err != nil {
				return nil, err
			}
			return services.Control(r.Exec, unit, cmd)
		})
	}

	e.Register(protocol.KindUfw, protocol.CmdGet, func(*protocol.Request) (any, error) {
		return r.Ufw.Rules()
	})
	e.Register(protocol.KindUfw, protocol.CmdAdd, func(req *protocol.Request) (any, error) {
		rules, err := argument[[]string](req)
		if err != nil {
			return nil, err
		}
		if err := r.Ufw.Add(rules); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	})
	e.Register(protocol.KindUfw, protocol.CmdDelete, func(req *protocol.Request) (any, error) {
		rules, err := argument[[]string](req)
		if err != nil {
			return nil, err
		}
		if err := r.Ufw.Delete(rules); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	})
	e.Register(protocol.KindUfw, protocol.CmdEnable, okay(r.Ufw.Enable))
	e.Register(protocol.KindUfw, protocol.CmdDisable, okay(r.Ufw.Disable))
	e.Register(protocol.KindUfw, protocol.CmdInit, okay(r.Ufw.Reset))
	e.Register(protocol.KindUfw, protocol.CmdStatus, func(*protocol.Request) (any, error) {
		return r.Ufw.IsActive(), nil
	})

	e.Register(protocol.KindVersion, protocol.CmdGet, func(*protocol.Request) (any, error) {
		return r.Info.Versions(), nil
	})
	e.Register(protocol.KindVersion, protocol.CmdSetOsVersion, setVersion(r, protocol.CmdSetOsVersion))
	e.Register(protocol.KindVersion, protocol.CmdSetProductVersion, setVersion(r, protocol.CmdSetProductVersion))
	e.Register(protocol.KindVersion, protocol.CmdStatus, func(*protocol.Request) (any, error) {
		return r.Info.DiskUsage()
	})

	e.Register(protocol.KindReboot, protocol.CmdNone, okay(r.Power.Reboot))
	e.Register(protocol.KindPowerOff, protocol.CmdNone, okay(r.Power.PowerOff))
	e.Register(protocol.KindGracefulReboot, protocol.CmdNone, okay(func() error {
		return r.Exec.Spawn("reboot")
	}))
	e.Register(protocol.KindGracefulPowerOff, protocol.CmdNone, okay(func() error {
		return r.Exec.Spawn("poweroff")
	}))

	return e
}

// okay adapts a plain action into a handler answering protocol.Okay.
func okay(action func() error) Handler {
	return func(*protocol.Request) (any, error) {
		if err := action(); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	}
}

func setVersion(r Resources, cmd protocol.SubCommand) Handler {
	return func(req *protocol.Request) (any, error) {
		value, err := argument[string](req)
		if err != nil {
			return nil, err
		}
		if err := r.Info.SetVersion(cmd, value); err != nil {
			return nil, err
		}
		return protocol.Okay, nil
	}
}
